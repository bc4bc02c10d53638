package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryType string

const (
	DeliveryExpress DeliveryType = "EXPRESS"
	DeliveryPremium DeliveryType = "PREMIUM"
)

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch d := DeliveryType(s); d {
	case DeliveryExpress, DeliveryPremium:
		return d, nil
	default:
		return "", fmt.Errorf("deliveryType[%s] is not valid: %w", s, ErrMalformedRequest)
	}
}

type PurchaseItem struct {
	ProductID int64
	Quantity  int
}

// PurchaseRequest is a checkout attempt. ClaimedTotal is what the caller
// believes items plus delivery cost in base currency.
type PurchaseRequest struct {
	OwnerID      string
	DeliveryType DeliveryType
	Items        []PurchaseItem
	ClaimedTotal decimal.Decimal
}

// Validate checks the request shape only; it never looks at the catalog.
func (r PurchaseRequest) Validate() error {
	if r.OwnerID == "" {
		return fmt.Errorf("ownerID is empty: %w", ErrMalformedRequest)
	}
	if _, err := ParseDeliveryType(string(r.DeliveryType)); err != nil {
		return err
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("items are empty: %w", ErrMalformedRequest)
	}
	if !r.ClaimedTotal.IsPositive() {
		return fmt.Errorf("totalPrice[%s] is not positive: %w", r.ClaimedTotal, ErrMalformedRequest)
	}

	seen := make(map[int64]struct{}, len(r.Items))
	for _, item := range r.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("quantity[%d] for product %d: %w", item.Quantity, item.ProductID, ErrMalformedRequest)
		}
		if _, ok := seen[item.ProductID]; ok {
			return fmt.Errorf("product %d is listed twice: %w", item.ProductID, ErrMalformedRequest)
		}
		seen[item.ProductID] = struct{}{}
	}

	return nil
}

// PurchaseReceipt describes a committed purchase.
type PurchaseReceipt struct {
	OrderID     uuid.UUID
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
	Earned      decimal.Decimal
	Loyalty     LoyaltyState
	Recent      []RecentPurchase
}
