package port

import (
	"context"

	"github.com/nikolayk812/shopcore/internal/domain"
)

// Seed is the reference data of a store: catalog, rates and loyalty tables.
type Seed struct {
	Products        []domain.Product
	Recommendations map[int64][]int64
	Rates           domain.ExchangeRates
	Thresholds      domain.GradeThresholds
	Policies        domain.ShippingPolicies
}

// SeedLoader replaces the reference data of a store.
type SeedLoader interface {
	Load(ctx context.Context, seed Seed) error
}
