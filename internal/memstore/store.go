// Package memstore keeps the engine state in process memory.
//
// A single RWMutex guards everything. Reads copy what they return, so callers
// always observe a state between two commits. Atomically holds the write lock
// for a whole purchase, which makes validation and commit one critical section.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
)

type account struct {
	loyalty domain.LoyaltyState
	recent  []domain.RecentPurchase
}

type Store struct {
	mu sync.RWMutex

	products        map[int64]domain.Product
	productOrder    []int64
	recommendations map[int64][]int64
	rates           domain.ExchangeRates
	thresholds      domain.GradeThresholds
	policies        domain.ShippingPolicies

	accounts map[string]*account
	carts    map[string]domain.Cart
	orders   []port.Order
}

var (
	_ port.CatalogReader   = (*Store)(nil)
	_ port.ReferenceReader = (*Store)(nil)
	_ port.AccountReader   = (*Store)(nil)
	_ port.PurchaseStore   = (*Store)(nil)
	_ port.CartRepository  = (*Store)(nil)
	_ port.SeedLoader      = (*Store)(nil)
)

func New(seed port.Seed) (*Store, error) {
	s := &Store{
		accounts: make(map[string]*account),
		carts:    make(map[string]domain.Cart),
	}
	if err := s.Replace(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace swaps the reference data, e.g. after a refresh from upstream.
// Accounts and carts are kept.
func (s *Store) Replace(seed port.Seed) error {
	if len(seed.Thresholds) == 0 {
		return fmt.Errorf("seed has no grade thresholds")
	}
	if len(seed.Policies) == 0 {
		return fmt.Errorf("seed has no shipping policies")
	}

	products := make(map[int64]domain.Product, len(seed.Products))
	order := make([]int64, 0, len(seed.Products))
	for _, p := range seed.Products {
		if _, ok := products[p.ID]; ok {
			return fmt.Errorf("product %d is seeded twice", p.ID)
		}
		if p.Stock < 0 {
			return fmt.Errorf("product %d has negative stock", p.ID)
		}
		products[p.ID] = cloneProduct(p)
		order = append(order, p.ID)
	}

	recommendations := make(map[int64][]int64, len(seed.Recommendations))
	for id, ids := range seed.Recommendations {
		recommendations[id] = slices.Clone(ids)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.productOrder = order
	s.recommendations = recommendations
	s.rates = maps.Clone(seed.Rates)
	s.thresholds = slices.Clone(seed.Thresholds)
	s.policies = maps.Clone(seed.Policies)

	return nil
}

func (s *Store) Load(_ context.Context, seed port.Seed) error {
	return s.Replace(seed)
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, cloneProduct(s.products[id]))
	}
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	return cloneProduct(p), nil
}

func (s *Store) Recommendations(_ context.Context, id int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.recommendations[id]
	if !ok {
		return nil, fmt.Errorf("recommendations for %d: %w", id, domain.ErrProductNotFound)
	}
	return slices.Clone(ids), nil
}

func (s *Store) ExchangeRates(_ context.Context) (domain.ExchangeRates, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.rates), nil
}

func (s *Store) GradeThresholds(_ context.Context) (domain.GradeThresholds, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.thresholds), nil
}

func (s *Store) ShippingPolicies(_ context.Context) (domain.ShippingPolicies, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.policies), nil
}

func (s *Store) Loyalty(_ context.Context, ownerID string) (domain.LoyaltyState, error) {
	if ownerID == "" {
		return domain.LoyaltyState{}, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[ownerID]; ok {
		return a.loyalty, nil
	}
	return s.newAccount().loyalty, nil
}

func (s *Store) RecentPurchases(_ context.Context, ownerID string) ([]domain.RecentPurchase, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[ownerID]; ok {
		return slices.Clone(a.recent), nil
	}
	return s.newAccount().recent, nil
}

// Orders returns the committed orders, oldest first.
func (s *Store) Orders() []port.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

// newAccount describes an owner that never purchased: no points and the first
// three catalog products as recent purchases. Callers hold the lock.
func (s *Store) newAccount() *account {
	recent := make([]domain.RecentPurchase, 0, 3)
	for _, id := range s.productOrder {
		if len(recent) == 3 {
			break
		}
		recent = append(recent, domain.NewRecentPurchase(s.products[id]))
	}

	return &account{
		loyalty: domain.LoyaltyState{Points: zeroPoints, Grade: s.thresholds.GradeFor(zeroPoints)},
		recent:  recent,
	}
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = slices.Clone(p.Images)
	return p
}
