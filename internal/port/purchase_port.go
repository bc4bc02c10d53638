package port

import (
	"context"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
)

// PurchaseStore runs fn as the only writer of the shared catalog and loyalty
// state. Effects applied through PurchaseTx become visible together when fn
// returns nil and are discarded otherwise.
type PurchaseStore interface {
	Atomically(ctx context.Context, ownerID string, fn func(tx PurchaseTx) error) error
}

type PurchaseTx interface {
	// Products returns the products found among ids; missing ids are absent from the map.
	Products(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	Loyalty(ctx context.Context) (domain.LoyaltyState, error)
	GradeThresholds(ctx context.Context) (domain.GradeThresholds, error)
	ShippingPolicies(ctx context.Context) (domain.ShippingPolicies, error)

	DecrementStock(ctx context.Context, productID int64, quantity int) error
	ReplaceRecentPurchases(ctx context.Context, recent []domain.RecentPurchase) error
	SetLoyalty(ctx context.Context, state domain.LoyaltyState) error
	RecordOrder(ctx context.Context, order Order) error
}

// Order is the persisted summary of a committed purchase.
type Order struct {
	Receipt  domain.PurchaseReceipt
	Delivery domain.DeliveryType
	Items    []domain.PurchaseItem
	Claimed  decimal.Decimal
}
