package memstore

import (
	"context"
	"fmt"
	"slices"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/shopspring/decimal"
)

var zeroPoints = decimal.Zero

// Atomically stages every effect of fn and applies them only if fn succeeds.
func (s *Store) Atomically(ctx context.Context, ownerID string, fn func(tx port.PurchaseTx) error) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	acc, ok := s.accounts[ownerID]
	if !ok {
		acc = s.newAccount()
	}

	tx := &purchaseTx{
		store:   s,
		account: acc,
		sold:    make(map[int64]int),
	}

	if err := fn(tx); err != nil {
		return err
	}

	tx.apply(ownerID)
	return nil
}

type purchaseTx struct {
	store   *Store
	account *account

	sold    map[int64]int
	recent  []domain.RecentPurchase
	loyalty *domain.LoyaltyState
	orders  []port.Order
}

func (tx *purchaseTx) Products(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		p, ok := tx.store.products[id]
		if !ok {
			continue
		}
		p = cloneProduct(p)
		p.Stock -= tx.sold[id]
		out[id] = p
	}
	return out, nil
}

func (tx *purchaseTx) Loyalty(_ context.Context) (domain.LoyaltyState, error) {
	if tx.loyalty != nil {
		return *tx.loyalty, nil
	}
	return tx.account.loyalty, nil
}

func (tx *purchaseTx) GradeThresholds(_ context.Context) (domain.GradeThresholds, error) {
	return slices.Clone(tx.store.thresholds), nil
}

func (tx *purchaseTx) ShippingPolicies(_ context.Context) (domain.ShippingPolicies, error) {
	return tx.store.policies, nil
}

func (tx *purchaseTx) DecrementStock(_ context.Context, productID int64, quantity int) error {
	p, ok := tx.store.products[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, domain.ErrProductNotFound)
	}
	if quantity < 1 {
		return fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}
	if p.Stock-tx.sold[productID] < quantity {
		return fmt.Errorf("product %d: %w", productID, domain.ErrInsufficientStock)
	}

	tx.sold[productID] += quantity
	return nil
}

func (tx *purchaseTx) ReplaceRecentPurchases(_ context.Context, recent []domain.RecentPurchase) error {
	tx.recent = slices.Clone(recent)
	if tx.recent == nil {
		tx.recent = []domain.RecentPurchase{}
	}
	return nil
}

func (tx *purchaseTx) SetLoyalty(_ context.Context, state domain.LoyaltyState) error {
	current := tx.account.loyalty
	if tx.loyalty != nil {
		current = *tx.loyalty
	}
	if state.Points.LessThan(current.Points) {
		return fmt.Errorf("points cannot decrease from %s to %s", current.Points, state.Points)
	}
	tx.loyalty = &state
	return nil
}

func (tx *purchaseTx) RecordOrder(_ context.Context, order port.Order) error {
	tx.orders = append(tx.orders, order)
	return nil
}

// apply publishes the staged effects. The store lock is held by the caller.
func (tx *purchaseTx) apply(ownerID string) {
	s := tx.store

	for id, quantity := range tx.sold {
		p := s.products[id]
		p.Stock -= quantity
		s.products[id] = p
	}

	acc := &account{loyalty: tx.account.loyalty, recent: tx.account.recent}
	if tx.recent != nil {
		acc.recent = tx.recent
	}
	if tx.loyalty != nil {
		acc.loyalty = *tx.loyalty
	}
	s.accounts[ownerID] = acc

	s.orders = append(s.orders, tx.orders...)
}
