package checkout_test

import (
	"testing"

	"github.com/nikolayk812/shopcore/internal/checkout"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() checkout.Catalog {
	return checkout.NewCatalog([]domain.Product{
		{ID: 1, Name: "Gouda", Price: d("12.99"), Stock: 3, Images: []string{"/g.png"}, Variant: domain.Cheese{}},
		{ID: 2, Name: "Crackers", Price: d("4"), Stock: 10, Variant: domain.Cracker{GlutenFree: true}},
		{ID: 3, Name: "Tea", Price: d("10.005"), Stock: 0, Variant: domain.Tea{}},
	})
}

func TestCartTotal(t *testing.T) {
	catalog := testCatalog()

	cart := domain.NewCart("me",
		domain.CartItem{ProductID: 1, Quantity: 2},
		domain.CartItem{ProductID: 2, Quantity: 1},
	)

	total, err := checkout.CartTotal(cart, catalog)
	require.NoError(t, err)
	assert.True(t, total.Equal(d("29.98")), total.String())

	cart.Increase(99)
	_, err = checkout.CartTotal(cart, catalog)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeliveryFee(t *testing.T) {
	policies := domain.DefaultShippingPolicies()

	tests := []struct {
		name     string
		delivery domain.DeliveryType
		total    string
		grade    domain.Grade
		want     string
		wantErr  error
	}{
		{name: "express is free", delivery: domain.DeliveryExpress, total: "5", grade: domain.GradeExplorer, want: "0"},
		{name: "premium explorer below threshold", delivery: domain.DeliveryPremium, total: "29.99", grade: domain.GradeExplorer, want: "2"},
		{name: "premium pilot below threshold", delivery: domain.DeliveryPremium, total: "10", grade: domain.GradePilot, want: "1"},
		{name: "premium commander", delivery: domain.DeliveryPremium, total: "10", grade: domain.GradeCommander, want: "0"},
		{name: "premium at threshold", delivery: domain.DeliveryPremium, total: "30", grade: domain.GradeExplorer, want: "0"},
		{name: "unknown delivery", delivery: "DRONE", total: "10", grade: domain.GradeExplorer, wantErr: domain.ErrMalformedRequest},
		{name: "unknown grade", delivery: domain.DeliveryPremium, total: "10", grade: "ADMIRAL", wantErr: domain.ErrUnknownGrade},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := checkout.DeliveryFee(tt.delivery, d(tt.total), tt.grade, policies)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, fee.Equal(d(tt.want)), fee.String())
		})
	}
}

func TestAddToCartRespectsStock(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart("me")

	for range 3 {
		require.NoError(t, checkout.AddToCart(&cart, catalog[1]))
	}
	assert.False(t, checkout.CanIncrease(cart, catalog[1]))

	err := checkout.AddToCart(&cart, catalog[1])
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, cart.QuantityOf(1))

	err = checkout.AddToCart(&cart, catalog[3])
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, cart.QuantityOf(3))
}

func TestSetQuantity(t *testing.T) {
	catalog := testCatalog()
	cart := domain.NewCart("me")

	require.NoError(t, checkout.SetQuantity(&cart, catalog[2], 10))
	require.ErrorIs(t, checkout.SetQuantity(&cart, catalog[2], 11), domain.ErrInsufficientStock)
	require.ErrorIs(t, checkout.SetQuantity(&cart, catalog[2], 0), domain.ErrInvalidQuantity)
	assert.Equal(t, 10, cart.QuantityOf(2))
}

func TestQuote(t *testing.T) {
	catalog := testCatalog()
	loyalty := domain.LoyaltyState{Points: decimal.Zero, Grade: domain.GradeExplorer}
	policies := domain.DefaultShippingPolicies()

	cart := domain.NewCart("me",
		domain.CartItem{ProductID: 2, Quantity: 1},
		domain.CartItem{ProductID: 1, Quantity: 1},
	)

	q, err := checkout.NewQuote(cart, catalog, domain.DeliveryPremium, loyalty, policies)
	require.NoError(t, err)

	assert.True(t, q.ItemsTotal.Equal(d("16.99")))
	assert.True(t, q.DeliveryFee.Equal(d("2")))
	assert.True(t, q.GrandTotal().Equal(d("18.99")))

	req := q.PurchaseRequest("me")
	require.NoError(t, req.Validate())
	assert.Equal(t, []domain.PurchaseItem{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}}, req.Items)
	assert.True(t, req.ClaimedTotal.Equal(d("18.99")))

	_, err = checkout.NewQuote(domain.NewCart("me"), catalog, domain.DeliveryExpress, loyalty, policies)
	require.Error(t, err)
}

func TestQuoteDisplay(t *testing.T) {
	rates := domain.ExchangeRates{currency.KRW: decimal.NewFromInt(1300)}

	tests := []struct {
		name string
		q    checkout.Quote
		unit currency.Unit
		want checkout.Display
	}{
		{
			name: "usd with fee",
			q:    checkout.Quote{ItemsTotal: d("12.99"), DeliveryFee: d("2")},
			unit: currency.USD,
			want: checkout.Display{ItemsTotal: "$12.99", DeliveryFee: "$2", GrandTotal: "$14.99"},
		},
		{
			name: "krw free shipping",
			q:    checkout.Quote{ItemsTotal: d("10.005"), DeliveryFee: decimal.Zero},
			unit: currency.KRW,
			want: checkout.Display{ItemsTotal: "13,007원", GrandTotal: "13,007원", FreeShipped: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.q.Display(rates, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := checkout.Quote{ItemsTotal: d("1")}.Display(rates, currency.EUR)
	require.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}
