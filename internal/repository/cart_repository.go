package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return getCart(ctx, r.q, ownerID)
}

// Increase checks the limit in the same statement that bumps the quantity, so
// concurrent increases cannot pass it.
func (r *cartRepository) Increase(ctx context.Context, ownerID string, productID int64, limit int) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}
	if limit < 1 {
		return domain.Cart{}, fmt.Errorf("product %d is limited to %d: %w", productID, limit, domain.ErrInsufficientStock)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		rowsAffected, err := q.IncreaseItem(ctx, db.IncreaseItemParams{
			OwnerID:     ownerID,
			ProductID:   productID,
			MaxQuantity: int32(limit),
		})
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.IncreaseItem: %w", err)
		}
		if rowsAffected == 0 {
			return domain.Cart{}, fmt.Errorf("product %d is limited to %d: %w", productID, limit, domain.ErrInsufficientStock)
		}

		return getCart(ctx, q, ownerID)
	})
}

// Decrease lowers the quantity by one and drops the row instead of storing zero.
func (r *cartRepository) Decrease(ctx context.Context, ownerID string, productID int64) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		rowsAffected, err := q.DecreaseItem(ctx, db.DecreaseItemParams{
			OwnerID:   ownerID,
			ProductID: productID,
		})
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.DecreaseItem: %w", err)
		}

		if rowsAffected == 0 {
			_, err := q.DeleteItem(ctx, db.DeleteItemParams{
				OwnerID:   ownerID,
				ProductID: productID,
			})
			if err != nil {
				return domain.Cart{}, fmt.Errorf("q.DeleteItem: %w", err)
			}
		}

		return getCart(ctx, q, ownerID)
	})
}

func (r *cartRepository) SetQuantity(ctx context.Context, ownerID string, productID int64, quantity int) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}
	if quantity < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		err := q.SetItemQuantity(ctx, db.SetItemQuantityParams{
			OwnerID:   ownerID,
			ProductID: productID,
			Quantity:  int32(quantity),
		})
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.SetItemQuantity: %w", err)
		}

		return getCart(ctx, q, ownerID)
	})
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, productID int64) (bool, error) {
	if ownerID == "" {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteItem(ctx, db.DeleteItemParams{
		OwnerID:   ownerID,
		ProductID: productID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := r.q.ClearCart(ctx, ownerID); err != nil {
		return fmt.Errorf("q.ClearCart: %w", err)
	}

	return nil
}

func getCart(ctx context.Context, q *db.Queries, ownerID string) (domain.Cart, error) {
	rows, err := q.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	return domain.NewCart(ownerID, mapGetCartRowsToDomain(rows)...), nil
}

func mapGetCartRowsToDomain(rows []db.GetCartRow) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(rows))

	for _, row := range rows {
		items = append(items, domain.CartItem{
			ProductID: row.ProductID,
			Quantity:  int(row.Quantity),
		})
	}

	return items
}
