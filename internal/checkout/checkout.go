// Package checkout derives cart totals, delivery fees and purchase requests on
// the caller side of a purchase. All amounts are in domain.BaseCurrency;
// currency conversion happens only when a Quote is rendered.
package checkout

import (
	"fmt"

	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Catalog resolves products by id.
type Catalog map[int64]domain.Product

func NewCatalog(products []domain.Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.ID] = p
	}
	return c
}

// CartTotal sums price times quantity without intermediate rounding.
func CartTotal(cart domain.Cart, catalog Catalog) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range cart.Items() {
		p, ok := catalog[item.ProductID]
		if !ok {
			return decimal.Zero, fmt.Errorf("product %d: %w", item.ProductID, domain.ErrProductNotFound)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// DeliveryFee is zero for EXPRESS. PREMIUM is free from the grade's threshold on,
// otherwise it costs the grade's shipping fee.
func DeliveryFee(delivery domain.DeliveryType, cartTotal decimal.Decimal, grade domain.Grade, policies domain.ShippingPolicies) (decimal.Decimal, error) {
	switch delivery {
	case domain.DeliveryExpress:
		return decimal.Zero, nil
	case domain.DeliveryPremium:
		policy, err := policies.For(grade)
		if err != nil {
			return decimal.Zero, err
		}
		if cartTotal.GreaterThanOrEqual(policy.FreeShippingThreshold) {
			return decimal.Zero, nil
		}
		return policy.ShippingFee, nil
	default:
		return decimal.Zero, fmt.Errorf("deliveryType[%s] is not valid: %w", delivery, domain.ErrMalformedRequest)
	}
}

// CanIncrease reports whether one more unit of p fits into the stock.
func CanIncrease(cart domain.Cart, p domain.Product) bool {
	return cart.QuantityOf(p.ID) < p.Stock
}

// AddToCart increases the quantity of p by one unless the stock is exhausted.
func AddToCart(cart *domain.Cart, p domain.Product) error {
	if !CanIncrease(*cart, p) {
		return fmt.Errorf("product %d has %d in stock: %w", p.ID, p.Stock, domain.ErrInsufficientStock)
	}
	cart.Increase(p.ID)
	return nil
}

// SetQuantity sets an absolute quantity no larger than the stock of p.
func SetQuantity(cart *domain.Cart, p domain.Product, n int) error {
	if n > p.Stock {
		return fmt.Errorf("product %d has %d in stock: %w", p.ID, p.Stock, domain.ErrInsufficientStock)
	}
	return cart.SetQuantity(p.ID, n)
}

// Quote is the checkout view of a cart.
type Quote struct {
	Delivery    domain.DeliveryType
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
	Items       []domain.PurchaseItem
}

func (q Quote) GrandTotal() decimal.Decimal {
	return q.ItemsTotal.Add(q.DeliveryFee)
}

func NewQuote(cart domain.Cart, catalog Catalog, delivery domain.DeliveryType, loyalty domain.LoyaltyState, policies domain.ShippingPolicies) (Quote, error) {
	if cart.IsEmpty() {
		return Quote{}, fmt.Errorf("cart is empty")
	}

	itemsTotal, err := CartTotal(cart, catalog)
	if err != nil {
		return Quote{}, fmt.Errorf("CartTotal: %w", err)
	}

	fee, err := DeliveryFee(delivery, itemsTotal, loyalty.Grade, policies)
	if err != nil {
		return Quote{}, fmt.Errorf("DeliveryFee: %w", err)
	}

	items := make([]domain.PurchaseItem, 0)
	for _, item := range cart.Items() {
		items = append(items, domain.PurchaseItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return Quote{
		Delivery:    delivery,
		ItemsTotal:  itemsTotal,
		DeliveryFee: fee,
		Items:       items,
	}, nil
}

// PurchaseRequest builds the request to submit, with the grand total rounded
// to cents for transmission.
func (q Quote) PurchaseRequest(ownerID string) domain.PurchaseRequest {
	return domain.PurchaseRequest{
		OwnerID:      ownerID,
		DeliveryType: q.Delivery,
		Items:        q.Items,
		ClaimedTotal: q.GrandTotal().Round(2),
	}
}

type Display struct {
	ItemsTotal  string
	DeliveryFee string
	GrandTotal  string
	FreeShipped bool
}

// Display renders the quote in unit. A zero delivery fee renders as an empty
// string with FreeShipped set.
func (q Quote) Display(rates domain.ExchangeRates, unit currency.Unit) (Display, error) {
	format := func(amount decimal.Decimal) (string, error) {
		m, err := rates.Convert(amount, unit)
		if err != nil {
			return "", err
		}
		return domain.Format(m.Amount, m.Currency)
	}

	var (
		d   Display
		err error
	)

	if d.ItemsTotal, err = format(q.ItemsTotal); err != nil {
		return Display{}, fmt.Errorf("format items total: %w", err)
	}
	if d.GrandTotal, err = format(q.GrandTotal()); err != nil {
		return Display{}, fmt.Errorf("format grand total: %w", err)
	}

	if q.DeliveryFee.IsZero() {
		d.FreeShipped = true
		return d, nil
	}
	if d.DeliveryFee, err = format(q.DeliveryFee); err != nil {
		return Display{}, fmt.Errorf("format delivery fee: %w", err)
	}

	return d, nil
}
