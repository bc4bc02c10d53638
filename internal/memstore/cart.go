package memstore

import (
	"context"
	"fmt"

	"github.com/nikolayk812/shopcore/internal/domain"
)

func (s *Store) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cartOf(ownerID).Clone(), nil
}

func (s *Store) Increase(_ context.Context, ownerID string, productID int64, limit int) (domain.Cart, error) {
	return s.mutateCart(ownerID, func(c *domain.Cart) error {
		if c.QuantityOf(productID) >= limit {
			return fmt.Errorf("product %d is limited to %d: %w", productID, limit, domain.ErrInsufficientStock)
		}
		c.Increase(productID)
		return nil
	})
}

func (s *Store) Decrease(_ context.Context, ownerID string, productID int64) (domain.Cart, error) {
	return s.mutateCart(ownerID, func(c *domain.Cart) error {
		c.Decrease(productID)
		return nil
	})
}

func (s *Store) SetQuantity(_ context.Context, ownerID string, productID int64, quantity int) (domain.Cart, error) {
	return s.mutateCart(ownerID, func(c *domain.Cart) error {
		return c.SetQuantity(productID, quantity)
	})
}

func (s *Store) DeleteItem(_ context.Context, ownerID string, productID int64) (bool, error) {
	var deleted bool

	_, err := s.mutateCart(ownerID, func(c *domain.Cart) error {
		deleted = c.QuantityOf(productID) > 0
		c.Remove(productID)
		return nil
	})

	return deleted, err
}

func (s *Store) Clear(_ context.Context, ownerID string) error {
	_, err := s.mutateCart(ownerID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
	return err
}

func (s *Store) mutateCart(ownerID string, fn func(c *domain.Cart) error) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartOf(ownerID).Clone()
	if err := fn(&c); err != nil {
		return domain.Cart{}, err
	}
	s.carts[ownerID] = c

	return c.Clone(), nil
}

// cartOf returns the stored cart or an empty one. Callers hold the lock.
func (s *Store) cartOf(ownerID string) domain.Cart {
	if c, ok := s.carts[ownerID]; ok {
		return c
	}
	return domain.NewCart(ownerID)
}
