package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/shopspring/decimal"
)

type purchaseStore struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewPurchaseStore(pool *pgxpool.Pool) port.PurchaseStore {
	return &purchaseStore{
		q:    db.New(pool),
		pool: pool,
	}
}

// Atomically runs fn in one transaction holding the owner's account row lock.
// Products read through the tx are locked as well, so concurrent purchases of
// the same product cannot both pass the stock check.
func (s *purchaseStore) Atomically(ctx context.Context, ownerID string, fn func(tx port.PurchaseTx) error) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	_, err := withTxOptions(ctx, s.pool, s.q, opts, func(q *db.Queries) (struct{}, error) {
		thresholds, err := gradeThresholds(ctx, q)
		if err != nil {
			return struct{}{}, err
		}

		err = q.EnsureAccount(ctx, db.EnsureAccountParams{
			OwnerID: ownerID,
			Grade:   string(thresholds.GradeFor(decimal.Zero)),
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.EnsureAccount: %w", err)
		}

		row, err := q.GetAccountForUpdate(ctx, ownerID)
		if err != nil {
			return struct{}{}, fmt.Errorf("q.GetAccountForUpdate: %w", err)
		}

		loyalty, err := mapAccountToDomain(row)
		if err != nil {
			return struct{}{}, err
		}

		tx := &purchaseTx{
			q:          q,
			ownerID:    ownerID,
			loyalty:    loyalty,
			thresholds: thresholds,
		}

		return struct{}{}, fn(tx)
	})

	return err
}

type purchaseTx struct {
	q          *db.Queries
	ownerID    string
	loyalty    domain.LoyaltyState
	thresholds domain.GradeThresholds
}

func (tx *purchaseTx) Products(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	rows, err := tx.q.GetProductsForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.GetProductsForUpdate: %w", err)
	}

	products, err := mapProductsToDomain(rows)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}

	return out, nil
}

func (tx *purchaseTx) Loyalty(_ context.Context) (domain.LoyaltyState, error) {
	return tx.loyalty, nil
}

func (tx *purchaseTx) GradeThresholds(_ context.Context) (domain.GradeThresholds, error) {
	return tx.thresholds, nil
}

func (tx *purchaseTx) ShippingPolicies(ctx context.Context) (domain.ShippingPolicies, error) {
	return shippingPolicies(ctx, tx.q)
}

func (tx *purchaseTx) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	rowsAffected, err := tx.q.DecrementStock(ctx, db.DecrementStockParams{
		Quantity: int32(quantity),
		ID:       productID,
	})
	if err != nil {
		return fmt.Errorf("q.DecrementStock: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", productID, domain.ErrInsufficientStock)
	}

	return nil
}

func (tx *purchaseTx) ReplaceRecentPurchases(ctx context.Context, recent []domain.RecentPurchase) error {
	if err := tx.q.DeleteRecentPurchases(ctx, tx.ownerID); err != nil {
		return fmt.Errorf("q.DeleteRecentPurchases: %w", err)
	}

	for i, r := range recent {
		err := tx.q.InsertRecentPurchase(ctx, db.InsertRecentPurchaseParams{
			OwnerID:   tx.ownerID,
			Position:  int32(i),
			ProductID: r.ProductID,
			Thumbnail: r.Thumbnail,
			Name:      r.Name,
			Price:     r.Price,
		})
		if err != nil {
			return fmt.Errorf("q.InsertRecentPurchase: %w", err)
		}
	}

	return nil
}

func (tx *purchaseTx) SetLoyalty(ctx context.Context, state domain.LoyaltyState) error {
	if state.Points.LessThan(tx.loyalty.Points) {
		return fmt.Errorf("points cannot decrease from %s to %s", tx.loyalty.Points, state.Points)
	}

	err := tx.q.UpdateAccount(ctx, db.UpdateAccountParams{
		OwnerID: tx.ownerID,
		Points:  state.Points,
		Grade:   string(state.Grade),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateAccount: %w", err)
	}

	tx.loyalty = state
	return nil
}

func (tx *purchaseTx) RecordOrder(ctx context.Context, order port.Order) error {
	r := order.Receipt

	err := tx.q.InsertOrder(ctx, db.InsertOrderParams{
		ID:           r.OrderID,
		OwnerID:      tx.ownerID,
		DeliveryType: string(order.Delivery),
		ItemsTotal:   r.ItemsTotal,
		DeliveryFee:  r.DeliveryFee,
		Total:        r.Total,
		ClaimedTotal: order.Claimed,
		EarnedPoints: r.Earned,
	})
	if err != nil {
		return fmt.Errorf("q.InsertOrder: %w", err)
	}

	for _, item := range order.Items {
		err := tx.q.InsertOrderItem(ctx, db.InsertOrderItemParams{
			OrderID:   r.OrderID,
			ProductID: item.ProductID,
			Quantity:  int32(item.Quantity),
		})
		if err != nil {
			return fmt.Errorf("q.InsertOrderItem: %w", err)
		}
	}

	return nil
}
