package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// catalogRepository serves the read side: catalog, reference tables and accounts.
type catalogRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

type CatalogRepository interface {
	port.CatalogReader
	port.ReferenceReader
	port.AccountReader
	port.SeedLoader
}

func NewCatalog(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	return mapProductsToDomain(rows)
}

func (r *catalogRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *catalogRepository) Recommendations(ctx context.Context, id int64) ([]int64, error) {
	ids, err := r.q.ListRecommendations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("q.ListRecommendations: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("recommendations for %d: %w", id, domain.ErrProductNotFound)
	}

	return ids, nil
}

func (r *catalogRepository) ExchangeRates(ctx context.Context) (domain.ExchangeRates, error) {
	rows, err := r.q.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListExchangeRates: %w", err)
	}

	rates := make(domain.ExchangeRates, len(rows))
	for _, row := range rows {
		unit, err := currency.ParseISO(row.Currency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
		}
		rates[unit] = row.Rate
	}

	return rates, nil
}

func (r *catalogRepository) GradeThresholds(ctx context.Context) (domain.GradeThresholds, error) {
	return gradeThresholds(ctx, r.q)
}

func (r *catalogRepository) ShippingPolicies(ctx context.Context) (domain.ShippingPolicies, error) {
	return shippingPolicies(ctx, r.q)
}

// Loyalty of an owner without a committed purchase is zero points at the lowest grade.
func (r *catalogRepository) Loyalty(ctx context.Context, ownerID string) (domain.LoyaltyState, error) {
	if ownerID == "" {
		return domain.LoyaltyState{}, fmt.Errorf("ownerID is empty")
	}

	row, err := r.q.GetAccount(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		thresholds, err := gradeThresholds(ctx, r.q)
		if err != nil {
			return domain.LoyaltyState{}, err
		}
		return domain.LoyaltyState{Points: decimal.Zero, Grade: thresholds.GradeFor(decimal.Zero)}, nil
	}
	if err != nil {
		return domain.LoyaltyState{}, fmt.Errorf("q.GetAccount: %w", err)
	}

	return mapAccountToDomain(row)
}

// RecentPurchases of an owner without a committed purchase are the first three catalog products.
func (r *catalogRepository) RecentPurchases(ctx context.Context, ownerID string) ([]domain.RecentPurchase, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	_, err := r.q.GetAccount(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		products, err := r.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		recent := make([]domain.RecentPurchase, 0, 3)
		for _, p := range products[:min(3, len(products))] {
			recent = append(recent, domain.NewRecentPurchase(p))
		}
		return recent, nil
	}
	if err != nil {
		return nil, fmt.Errorf("q.GetAccount: %w", err)
	}

	rows, err := r.q.ListRecentPurchases(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListRecentPurchases: %w", err)
	}

	return mapRecentRowsToDomain(rows), nil
}

// Load upserts seed into the reference tables in one transaction.
func (r *catalogRepository) Load(ctx context.Context, seed port.Seed) error {
	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		for _, p := range seed.Products {
			if err := q.UpsertProduct(ctx, mapProductToUpsert(p)); err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertProduct: %w", err)
			}
		}

		for productID, ids := range seed.Recommendations {
			if err := q.DeleteRecommendations(ctx, productID); err != nil {
				return struct{}{}, fmt.Errorf("q.DeleteRecommendations: %w", err)
			}
			for i, id := range ids {
				err := q.InsertRecommendation(ctx, db.InsertRecommendationParams{
					ProductID:     productID,
					Position:      int32(i),
					RecommendedID: id,
				})
				if err != nil {
					return struct{}{}, fmt.Errorf("q.InsertRecommendation: %w", err)
				}
			}
		}

		for unit, rate := range seed.Rates {
			err := q.UpsertExchangeRate(ctx, db.UpsertExchangeRateParams{Currency: unit.String(), Rate: rate})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertExchangeRate: %w", err)
			}
		}

		for _, t := range seed.Thresholds {
			err := q.UpsertGradeThreshold(ctx, db.UpsertGradeThresholdParams{Grade: string(t.Grade), MinPoint: t.MinPoint})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertGradeThreshold: %w", err)
			}
		}

		for _, p := range seed.Policies.Sorted() {
			err := q.UpsertGradeShipping(ctx, db.UpsertGradeShippingParams{
				Grade:                 string(p.Grade),
				ShippingFee:           p.ShippingFee,
				FreeShippingThreshold: p.FreeShippingThreshold,
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.UpsertGradeShipping: %w", err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func gradeThresholds(ctx context.Context, q *db.Queries) (domain.GradeThresholds, error) {
	rows, err := q.ListGradeThresholds(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListGradeThresholds: %w", err)
	}

	list := make([]domain.GradeThreshold, 0, len(rows))
	for _, row := range rows {
		grade, err := domain.ParseGrade(row.Grade)
		if err != nil {
			return nil, err
		}
		list = append(list, domain.GradeThreshold{Grade: grade, MinPoint: row.MinPoint})
	}

	return domain.NewGradeThresholds(list)
}

func shippingPolicies(ctx context.Context, q *db.Queries) (domain.ShippingPolicies, error) {
	rows, err := q.ListGradeShipping(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListGradeShipping: %w", err)
	}

	policies := make(domain.ShippingPolicies, len(rows))
	for _, row := range rows {
		grade, err := domain.ParseGrade(row.Grade)
		if err != nil {
			return nil, err
		}
		policies[grade] = domain.ShippingPolicy{
			Grade:                 grade,
			ShippingFee:           row.ShippingFee,
			FreeShippingThreshold: row.FreeShippingThreshold,
		}
	}

	return policies, nil
}
