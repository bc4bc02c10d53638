package port

import (
	"context"

	"github.com/nikolayk812/shopcore/internal/domain"
)

type CatalogReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	// GetProduct returns domain.ErrProductNotFound for an unknown id.
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	Recommendations(ctx context.Context, id int64) ([]int64, error)
}

type ReferenceReader interface {
	ExchangeRates(ctx context.Context) (domain.ExchangeRates, error)
	GradeThresholds(ctx context.Context) (domain.GradeThresholds, error)
	ShippingPolicies(ctx context.Context) (domain.ShippingPolicies, error)
}

type AccountReader interface {
	Loyalty(ctx context.Context, ownerID string) (domain.LoyaltyState, error)
	RecentPurchases(ctx context.Context, ownerID string) ([]domain.RecentPurchase, error)
}
