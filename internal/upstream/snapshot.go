package upstream

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"golang.org/x/sync/errgroup"
)

const maxParallelFetches = 4

// FetchSnapshot reads the whole reference data of the upstream service.
// A product without recommendations gets none.
func (c *Client) FetchSnapshot(ctx context.Context) (port.Seed, error) {
	var seed port.Seed

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := c.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("ListProducts: %w", err)
		}
		seed.Products = products
		return nil
	})
	g.Go(func() error {
		rates, err := c.ExchangeRates(gctx)
		if err != nil {
			return fmt.Errorf("ExchangeRates: %w", err)
		}
		seed.Rates = rates
		return nil
	})
	g.Go(func() error {
		thresholds, err := c.GradeThresholds(gctx)
		if err != nil {
			return fmt.Errorf("GradeThresholds: %w", err)
		}
		seed.Thresholds = thresholds
		return nil
	})
	g.Go(func() error {
		policies, err := c.ShippingPolicies(gctx)
		if err != nil {
			return fmt.Errorf("ShippingPolicies: %w", err)
		}
		seed.Policies = policies
		return nil
	})

	if err := g.Wait(); err != nil {
		return port.Seed{}, err
	}

	recommendations, err := c.fetchRecommendations(ctx, seed.Products)
	if err != nil {
		return port.Seed{}, err
	}
	seed.Recommendations = recommendations

	return seed, nil
}

func (c *Client) fetchRecommendations(ctx context.Context, products []domain.Product) (map[int64][]int64, error) {
	var (
		mu  sync.Mutex
		out = make(map[int64][]int64, len(products))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)

	for _, p := range products {
		g.Go(func() error {
			ids, err := c.Recommendations(gctx, p.ID)
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("Recommendations[%d]: %w", p.ID, err)
			}

			mu.Lock()
			out[p.ID] = ids
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
