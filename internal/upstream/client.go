// Package upstream is a client of the storefront contracts, used to seed a
// store from a running catalog service and to submit purchases.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nikolayk812/shopcore/internal/api"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"go.uber.org/zap"
)

const (
	defaultRetries = 3
	defaultTimeout = 10 * time.Second
)

var (
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")

	errEmptyBody = fmt.Errorf("%w: empty body", ErrMalformedResponse)
)

var (
	_ port.CatalogReader   = (*Client)(nil)
	_ port.ReferenceReader = (*Client)(nil)
	_ port.AccountReader   = (*Client)(nil)
)

type Client struct {
	base       *url.URL
	httpClient *http.Client
	retries    uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets how many times a failed GET is repeated. Zero disables retries.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = uint64(n)
		}
	}
}

func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = newBackOff }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("baseURL[%s] is not absolute", baseURL)
	}

	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retries:    defaultRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out, err := get[api.ProductList](ctx, c, api.PathProductList, "")
	if err != nil {
		return nil, err
	}
	return out.ToDomain()
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	out, err := get[api.Product](ctx, c, api.PathProduct+strconv.FormatInt(id, 10), "")
	if err != nil {
		return domain.Product{}, err
	}
	return out.ToDomain()
}

func (c *Client) Recommendations(ctx context.Context, id int64) ([]int64, error) {
	out, err := get[api.Recommendations](ctx, c, api.PathRecommend+strconv.FormatInt(id, 10), "")
	if err != nil {
		return nil, err
	}
	return out.RecommendProductIDs, nil
}

func (c *Client) ExchangeRates(ctx context.Context) (domain.ExchangeRates, error) {
	out, err := get[api.ExchangeRates](ctx, c, api.PathExchangeRate, "")
	if err != nil {
		return nil, err
	}
	return out.ToDomain()
}

func (c *Client) GradeThresholds(ctx context.Context) (domain.GradeThresholds, error) {
	out, err := get[api.GradePoints](ctx, c, api.PathGradePoint, "")
	if err != nil {
		return nil, err
	}
	return out.ToDomain()
}

func (c *Client) ShippingPolicies(ctx context.Context) (domain.ShippingPolicies, error) {
	out, err := get[api.GradeShippings](ctx, c, api.PathGradeShipping, "")
	if err != nil {
		return nil, err
	}
	return out.ToDomain()
}

func (c *Client) Loyalty(ctx context.Context, ownerID string) (domain.LoyaltyState, error) {
	out, err := get[api.Me](ctx, c, api.PathMe, ownerID)
	if err != nil {
		return domain.LoyaltyState{}, err
	}
	return out.ToDomain()
}

func (c *Client) RecentPurchases(ctx context.Context, ownerID string) ([]domain.RecentPurchase, error) {
	out, err := get[api.RecentProducts](ctx, c, api.PathRecentProducts, ownerID)
	if err != nil {
		return nil, err
	}
	return out.ToDomain(), nil
}

// Purchase submits req once; a purchase is never retried. The server may
// confirm a commit with an empty or null 200 body, in which case the receipt
// carries no order id.
func (c *Client) Purchase(ctx context.Context, req domain.PurchaseRequest) (domain.PurchaseReceipt, error) {
	body := api.FromPurchaseRequest(req)

	var buf bytes.Buffer
	if err := api.Encode(&buf, api.PurchaseEnvelope{Data: &body}); err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("api.Encode: %w", err)
	}

	var out *api.PurchaseResult
	err := c.do(ctx, http.MethodPost, api.PathPurchase, req.OwnerID, &buf, &out)
	if errors.Is(err, errEmptyBody) {
		return domain.PurchaseReceipt{}, nil
	}
	if err != nil {
		return domain.PurchaseReceipt{}, err
	}
	if out == nil {
		return domain.PurchaseReceipt{}, nil
	}

	return out.ToDomain()
}

// get decodes each attempt into a fresh T. Server errors and transport
// failures are retried; client errors and undecodable bodies are not.
func get[T any](ctx context.Context, c *Client, path, ownerID string) (T, error) {
	var result T

	attempt := 0
	op := func() error {
		attempt++

		var out T
		err := c.do(ctx, http.MethodGet, path, ownerID, nil, &out)
		if err == nil {
			result = out
			return nil
		}

		var se *statusError
		if errors.As(err, &se) && se.code < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		if errors.Is(err, ErrMalformedResponse) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		c.logger.Warn("upstream request failed",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.retries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		var zero T
		return zero, fmt.Errorf("GET %s: %w", path, err)
	}

	return result, nil
}

func (c *Client) do(ctx context.Context, method, path, ownerID string, body io.Reader, out any) error {
	u := c.base.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ownerID != "" {
		req.Header.Set("X-Owner-ID", ownerID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp)
	}

	if err := api.DecodeLenient(resp.Body, out); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("api.DecodeLenient: %w: %w", ErrMalformedResponse, err)
	}

	return nil
}

type statusError struct {
	code int
	kind string
	msg  string
}

func newStatusError(resp *http.Response) *statusError {
	se := &statusError{code: resp.StatusCode}

	var body api.Error
	if err := api.DecodeLenient(io.LimitReader(resp.Body, 1<<16), &body); err == nil {
		se.kind = body.Error
		se.msg = body.Message
	}

	return se
}

func (e *statusError) Error() string {
	if e.kind == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.code)
	}
	return fmt.Sprintf("%d %s: %s", e.code, e.kind, e.msg)
}

// Unwrap maps the error kind of the body, or a bare 404, to a domain error.
func (e *statusError) Unwrap() error {
	switch e.kind {
	case "MalformedRequest":
		return domain.ErrMalformedRequest
	case "ProductNotFound":
		return domain.ErrProductNotFound
	case "InsufficientStock":
		return domain.ErrInsufficientStock
	case "TotalMismatch":
		return domain.ErrTotalMismatch
	}
	if e.code == http.StatusNotFound {
		return domain.ErrProductNotFound
	}
	return ErrUnexpectedStatus
}
