package upstream_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/httpapi"
	"github.com/nikolayk812/shopcore/internal/memstore"
	"github.com/nikolayk812/shopcore/internal/order"
	"github.com/nikolayk812/shopcore/internal/upstream"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/currency"
)

var (
	decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
	currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
)

func noWait() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func newShop(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := memstore.New(memstore.DefaultSeed())
	require.NoError(t, err)

	deps := httpapi.Deps{
		Catalog:   store,
		Reference: store,
		Accounts:  store,
		Carts:     store,
		Purchaser: order.NewService(store),
	}

	srv := httptest.NewServer(httpapi.NewServer(deps, zaptest.NewLogger(t)).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchSnapshot(t *testing.T) {
	srv := newShop(t)

	client, err := upstream.New(srv.URL, upstream.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	seed, err := client.FetchSnapshot(t.Context())
	require.NoError(t, err)

	want := memstore.DefaultSeed()

	diff := cmp.Diff(want, seed, decimalComparer, currencyComparer, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}

func TestPurchaseThroughClient(t *testing.T) {
	srv := newShop(t)
	ctx := t.Context()

	client, err := upstream.New(srv.URL)
	require.NoError(t, err)

	req := domain.PurchaseRequest{
		OwnerID:      "carol",
		DeliveryType: domain.DeliveryPremium,
		Items:        []domain.PurchaseItem{{ProductID: 5, Quantity: 1}},
		ClaimedTotal: decimal.RequireFromString("9.8"),
	}

	receipt, err := client.Purchase(ctx, req)
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(decimal.RequireFromString("9.8")))
	assert.True(t, receipt.Loyalty.Points.Equal(decimal.RequireFromString("0.78")))

	loyalty, err := client.Loyalty(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, loyalty.Points.Equal(decimal.RequireFromString("0.78")))

	recent, err := client.RecentPurchases(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, int64(5), recent[0].ProductID)

	req.ClaimedTotal = decimal.RequireFromString("7.8")
	_, err = client.Purchase(ctx, req)
	require.ErrorIs(t, err, domain.ErrTotalMismatch)

	req.Items = []domain.PurchaseItem{{ProductID: 6, Quantity: 1}}
	req.ClaimedTotal = decimal.RequireFromString("8.5")
	_, err = client.Purchase(ctx, req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestGetProductNotFound(t *testing.T) {
	srv := newShop(t)

	client, err := upstream.New(srv.URL)
	require.NoError(t, err)

	_, err = client.GetProduct(t.Context(), 404)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRetries(t *testing.T) {
	tests := []struct {
		name         string
		failures     int32
		failStatus   int
		retries      int
		body         string
		wantErr      error
		wantAttempts int32
	}{
		{name: "recovers after server errors", failures: 2, failStatus: http.StatusBadGateway, retries: 3, wantAttempts: 3},
		{name: "gives up after retries", failures: 10, failStatus: http.StatusServiceUnavailable, retries: 2, wantErr: upstream.ErrUnexpectedStatus, wantAttempts: 3},
		{name: "client errors are not retried", failures: 10, failStatus: http.StatusBadRequest, retries: 3, wantErr: upstream.ErrUnexpectedStatus, wantAttempts: 1},
		{name: "retries disabled", failures: 1, failStatus: http.StatusInternalServerError, retries: 0, wantErr: upstream.ErrUnexpectedStatus, wantAttempts: 1},
		{name: "malformed body is not retried", retries: 3, body: `{"exchangeRate":"1300"}`, wantErr: upstream.ErrMalformedResponse, wantAttempts: 1},
		{name: "server error then malformed body", failures: 1, failStatus: http.StatusBadGateway, retries: 3, body: `[]`, wantErr: upstream.ErrMalformedResponse, wantAttempts: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if attempts.Add(1) <= tt.failures {
					w.WriteHeader(tt.failStatus)
					return
				}
				body := tt.body
				if body == "" {
					body = `{"exchangeRate":{"USD":1,"KRW":1300},"updatedAt":"ignored"}`
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(srv.Close)

			client, err := upstream.New(srv.URL,
				upstream.WithRetries(tt.retries),
				upstream.WithBackOff(noWait),
				upstream.WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)

			rates, err := client.ExchangeRates(t.Context())
			assert.Equal(t, tt.wantAttempts, attempts.Load())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rates, 2)
		})
	}
}

func TestPurchaseWithoutReceiptBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "empty body", body: ""},
		{name: "null body", body: "null"},
		{name: "receipt without order id", body: `{"grade":"EXPLORER"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client, err := upstream.New(srv.URL, upstream.WithLogger(zaptest.NewLogger(t)))
			require.NoError(t, err)

			receipt, err := client.Purchase(t.Context(), domain.PurchaseRequest{
				OwnerID:      "me",
				DeliveryType: domain.DeliveryExpress,
				Items:        []domain.PurchaseItem{{ProductID: 1, Quantity: 1}},
				ClaimedTotal: decimal.RequireFromString("12.99"),
			})
			assert.Equal(t, int32(1), attempts.Load())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uuid.Nil, receipt.OrderID)
		})
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := upstream.New("/api")
	require.Error(t, err)
}
