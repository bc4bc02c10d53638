package port

import (
	"context"

	"github.com/nikolayk812/shopcore/internal/domain"
)

// CartRepository keeps one session cart per owner.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// Increase adds one unit unless the quantity already reached limit, in which
	// case it returns domain.ErrInsufficientStock and leaves the cart unchanged.
	Increase(ctx context.Context, ownerID string, productID int64, limit int) (domain.Cart, error)
	Decrease(ctx context.Context, ownerID string, productID int64) (domain.Cart, error)
	SetQuantity(ctx context.Context, ownerID string, productID int64, quantity int) (domain.Cart, error)
	DeleteItem(ctx context.Context, ownerID string, productID int64) (bool, error)
	Clear(ctx context.Context, ownerID string) error
}
