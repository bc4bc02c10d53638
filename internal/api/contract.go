// Package api holds the JSON contracts shared by the HTTP server and the
// upstream client, and their mapping to the domain.
package api

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	PathProductList    = "/api/product/list"
	PathProduct        = "/api/product/"
	PathRecommend      = "/api/product/recommend/"
	PathPurchase       = "/api/product/purchase"
	PathExchangeRate   = "/api/exchange-rate"
	PathGradePoint     = "/api/grade/point"
	PathGradeShipping  = "/api/grade/shipping"
	PathMe             = "/api/me"
	PathRecentProducts = "/api/recent/product/list"
	PathCart           = "/api/cart"
)

type Product struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Stock             int      `json:"stock"`
	Price             Amount   `json:"price"`
	Description       string   `json:"description"`
	DetailDescription string   `json:"detailDescription"`
	Images            []string `json:"images"`
	Rating            Amount   `json:"rating"`
	IsGlutenFree      *bool    `json:"isGlutenFree,omitempty"`
	IsCaffeineFree    *bool    `json:"isCaffeineFree,omitempty"`
}

type ProductList struct {
	Products []Product `json:"products"`
}

type Recommendations struct {
	RecommendProductIDs []int64 `json:"recommendProductIds"`
}

type ExchangeRates struct {
	ExchangeRate map[string]Amount `json:"exchangeRate"`
}

type GradePoint struct {
	Type     string `json:"type"`
	MinPoint Amount `json:"minPoint"`
}

type GradePoints struct {
	GradePointList []GradePoint `json:"gradePointList"`
}

type GradeShipping struct {
	Type                  string `json:"type"`
	ShippingFee           Amount `json:"shippingFee"`
	FreeShippingThreshold Amount `json:"freeShippingThreshold"`
}

type GradeShippings struct {
	GradeShippingList []GradeShipping `json:"gradeShippingList"`
}

type Me struct {
	Point          Amount  `json:"point"`
	Grade          string  `json:"grade"`
	RemainingPoint *Amount `json:"remainingPoint,omitempty"`
}

type RecentProduct struct {
	ID        int64  `json:"id"`
	Thumbnail string `json:"thumbnail"`
	Name      string `json:"name"`
	Price     Amount `json:"price"`
}

type RecentProducts struct {
	RecentProducts []RecentProduct `json:"recentProducts"`
}

type PurchaseItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type Purchase struct {
	DeliveryType string         `json:"deliveryType"`
	TotalPrice   *Amount        `json:"totalPrice"`
	Items        []PurchaseItem `json:"items"`
}

// PurchaseEnvelope is the body the storefront client posts.
type PurchaseEnvelope struct {
	Data *Purchase `json:"data"`
}

type PurchaseResult struct {
	OrderID     string `json:"orderId"`
	ItemsTotal  Amount `json:"itemsTotal"`
	DeliveryFee Amount `json:"deliveryFee"`
	TotalPrice  Amount `json:"totalPrice"`
	EarnedPoint Amount `json:"earnedPoint"`
	Point       Amount `json:"point"`
	Grade       string `json:"grade"`
}

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type Cart struct {
	Items []CartLine `json:"items"`
}

type CartQuantity struct {
	Quantity int `json:"quantity"`
}

func FromProduct(p domain.Product) Product {
	out := Product{
		ID:                p.ID,
		Name:              p.Name,
		Category:          string(p.Category()),
		Stock:             p.Stock,
		Price:             NewAmount(p.Price),
		Description:       p.Description,
		DetailDescription: p.DetailDescription,
		Images:            p.Images,
		Rating:            NewAmount(p.Rating),
	}
	if out.Images == nil {
		out.Images = []string{}
	}

	switch v := p.Variant.(type) {
	case domain.Cracker:
		out.IsGlutenFree = &v.GlutenFree
	case domain.Tea:
		out.IsCaffeineFree = &v.CaffeineFree
	}

	return out
}

func (p Product) ToDomain() (domain.Product, error) {
	variant, err := domain.NewVariant(domain.Category(p.Category), deref(p.IsGlutenFree), deref(p.IsCaffeineFree))
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", p.ID, err)
	}
	if p.Stock < 0 {
		return domain.Product{}, fmt.Errorf("product %d: stock[%d] is negative", p.ID, p.Stock)
	}
	if p.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("product %d: price[%s] is negative", p.ID, p.Price)
	}

	return domain.Product{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		DetailDescription: p.DetailDescription,
		Images:            p.Images,
		Rating:            p.Rating.Decimal,
		Price:             p.Price.Decimal,
		Stock:             p.Stock,
		Variant:           variant,
	}, nil
}

func FromProducts(products []domain.Product) ProductList {
	out := ProductList{Products: make([]Product, 0, len(products))}
	for _, p := range products {
		out.Products = append(out.Products, FromProduct(p))
	}
	return out
}

func (l ProductList) ToDomain() ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(l.Products))
	for _, p := range l.Products {
		dp, err := p.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, dp)
	}
	return out, nil
}

func FromExchangeRates(rates domain.ExchangeRates) ExchangeRates {
	out := ExchangeRates{ExchangeRate: map[string]Amount{
		domain.BaseCurrency.String(): NewAmount(decimal.NewFromInt(1)),
	}}
	for unit, rate := range rates {
		out.ExchangeRate[unit.String()] = NewAmount(rate)
	}
	return out
}

func (r ExchangeRates) ToDomain() (domain.ExchangeRates, error) {
	out := make(domain.ExchangeRates, len(r.ExchangeRate))
	for code, rate := range r.ExchangeRate {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s is not positive: %s", code, rate)
		}
		out[unit] = rate.Decimal
	}
	if base, ok := out[domain.BaseCurrency]; ok && !base.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("rate for %s must be 1, got %s", domain.BaseCurrency, base)
	}
	return out, nil
}

func FromGradeThresholds(t domain.GradeThresholds) GradePoints {
	out := GradePoints{GradePointList: make([]GradePoint, 0, len(t))}
	for _, threshold := range t {
		out.GradePointList = append(out.GradePointList, GradePoint{
			Type:     string(threshold.Grade),
			MinPoint: NewAmount(threshold.MinPoint),
		})
	}
	return out
}

func (g GradePoints) ToDomain() (domain.GradeThresholds, error) {
	list := make([]domain.GradeThreshold, 0, len(g.GradePointList))
	for _, p := range g.GradePointList {
		grade, err := domain.ParseGrade(p.Type)
		if err != nil {
			return nil, err
		}
		list = append(list, domain.GradeThreshold{Grade: grade, MinPoint: p.MinPoint.Decimal})
	}
	return domain.NewGradeThresholds(list)
}

func FromShippingPolicies(p domain.ShippingPolicies) GradeShippings {
	sorted := p.Sorted()
	out := GradeShippings{GradeShippingList: make([]GradeShipping, 0, len(sorted))}
	for _, policy := range sorted {
		out.GradeShippingList = append(out.GradeShippingList, GradeShipping{
			Type:                  string(policy.Grade),
			ShippingFee:           NewAmount(policy.ShippingFee),
			FreeShippingThreshold: NewAmount(policy.FreeShippingThreshold),
		})
	}
	return out
}

func (g GradeShippings) ToDomain() (domain.ShippingPolicies, error) {
	out := make(domain.ShippingPolicies, len(g.GradeShippingList))
	for _, s := range g.GradeShippingList {
		grade, err := domain.ParseGrade(s.Type)
		if err != nil {
			return nil, err
		}
		out[grade] = domain.ShippingPolicy{
			Grade:                 grade,
			ShippingFee:           s.ShippingFee.Decimal,
			FreeShippingThreshold: s.FreeShippingThreshold.Decimal,
		}
	}
	return out, nil
}

func FromLoyalty(state domain.LoyaltyState, t domain.GradeThresholds) Me {
	remaining := NewAmount(t.RemainingToNextGrade(state.Points))
	return Me{
		Point:          NewAmount(state.Points),
		Grade:          string(state.Grade),
		RemainingPoint: &remaining,
	}
}

func (m Me) ToDomain() (domain.LoyaltyState, error) {
	grade, err := domain.ParseGrade(m.Grade)
	if err != nil {
		return domain.LoyaltyState{}, err
	}
	return domain.LoyaltyState{Points: m.Point.Decimal, Grade: grade}, nil
}

func FromRecentPurchases(recent []domain.RecentPurchase) RecentProducts {
	out := RecentProducts{RecentProducts: make([]RecentProduct, 0, len(recent))}
	for _, r := range recent {
		out.RecentProducts = append(out.RecentProducts, RecentProduct{
			ID:        r.ProductID,
			Thumbnail: r.Thumbnail,
			Name:      r.Name,
			Price:     NewAmount(r.Price),
		})
	}
	return out
}

func (r RecentProducts) ToDomain() []domain.RecentPurchase {
	out := make([]domain.RecentPurchase, 0, len(r.RecentProducts))
	for _, p := range r.RecentProducts {
		out = append(out, domain.RecentPurchase{
			ProductID: p.ID,
			Thumbnail: p.Thumbnail,
			Name:      p.Name,
			Price:     p.Price.Decimal,
		})
	}
	return out
}

// ToDomain checks presence of every field; the shape rules live in
// domain.PurchaseRequest.Validate.
func (p Purchase) ToDomain(ownerID string) (domain.PurchaseRequest, error) {
	if p.DeliveryType == "" || p.TotalPrice == nil || p.Items == nil {
		return domain.PurchaseRequest{}, fmt.Errorf("deliveryType, totalPrice and items are required: %w", domain.ErrMalformedRequest)
	}

	delivery, err := domain.ParseDeliveryType(p.DeliveryType)
	if err != nil {
		return domain.PurchaseRequest{}, err
	}

	items := make([]domain.PurchaseItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, domain.PurchaseItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return domain.PurchaseRequest{
		OwnerID:      ownerID,
		DeliveryType: delivery,
		Items:        items,
		ClaimedTotal: p.TotalPrice.Decimal,
	}, nil
}

func FromPurchaseRequest(req domain.PurchaseRequest) Purchase {
	total := NewAmount(req.ClaimedTotal)
	items := make([]PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, PurchaseItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return Purchase{
		DeliveryType: string(req.DeliveryType),
		TotalPrice:   &total,
		Items:        items,
	}
}

func FromReceipt(r domain.PurchaseReceipt) PurchaseResult {
	return PurchaseResult{
		OrderID:     r.OrderID.String(),
		ItemsTotal:  NewAmount(r.ItemsTotal),
		DeliveryFee: NewAmount(r.DeliveryFee),
		TotalPrice:  NewAmount(r.Total),
		EarnedPoint: NewAmount(r.Earned),
		Point:       NewAmount(r.Loyalty.Points),
		Grade:       string(r.Loyalty.Grade),
	}
}

func (r PurchaseResult) ToDomain() (domain.PurchaseReceipt, error) {
	orderID, err := uuid.Parse(r.OrderID)
	if err != nil {
		return domain.PurchaseReceipt{}, fmt.Errorf("orderId[%s]: %w", r.OrderID, err)
	}

	grade, err := domain.ParseGrade(r.Grade)
	if err != nil {
		return domain.PurchaseReceipt{}, err
	}

	return domain.PurchaseReceipt{
		OrderID:     orderID,
		ItemsTotal:  r.ItemsTotal.Decimal,
		DeliveryFee: r.DeliveryFee.Decimal,
		Total:       r.TotalPrice.Decimal,
		Earned:      r.EarnedPoint.Decimal,
		Loyalty:     domain.LoyaltyState{Points: r.Point.Decimal, Grade: grade},
	}, nil
}

func FromCart(c domain.Cart) Cart {
	items := c.Items()
	out := Cart{Items: make([]CartLine, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}

func deref(b *bool) bool {
	return b != nil && *b
}
