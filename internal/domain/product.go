package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCheese  Category = "CHEESE"
	CategoryCracker Category = "CRACKER"
	CategoryTea     Category = "TEA"
)

// Product is a catalog record. Price is in BaseCurrency.
// Category specific data lives in Variant.
type Product struct {
	ID                int64
	Name              string
	Description       string
	DetailDescription string
	Images            []string
	Rating            decimal.Decimal
	Price             decimal.Decimal
	Stock             int
	Variant           Variant
}

func (p Product) Category() Category {
	if p.Variant == nil {
		return ""
	}
	return p.Variant.Category()
}

func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Variant is one of Cheese, Cracker or Tea.
type Variant interface {
	Category() Category
	variant()
}

type Cheese struct{}

type Cracker struct {
	GlutenFree bool
}

type Tea struct {
	CaffeineFree bool
}

func (Cheese) Category() Category  { return CategoryCheese }
func (Cracker) Category() Category { return CategoryCracker }
func (Tea) Category() Category     { return CategoryTea }

func (Cheese) variant()  {}
func (Cracker) variant() {}
func (Tea) variant()     {}

// NewVariant builds the variant for category. Flags that do not belong to
// category are ignored.
func NewVariant(category Category, glutenFree, caffeineFree bool) (Variant, error) {
	switch category {
	case CategoryCheese:
		return Cheese{}, nil
	case CategoryCracker:
		return Cracker{GlutenFree: glutenFree}, nil
	case CategoryTea:
		return Tea{CaffeineFree: caffeineFree}, nil
	default:
		return nil, fmt.Errorf("category[%s] is not valid", category)
	}
}

// RecentPurchase is one line of the last order snapshot.
type RecentPurchase struct {
	ProductID int64
	Thumbnail string
	Name      string
	Price     decimal.Decimal
}

func NewRecentPurchase(p Product) RecentPurchase {
	return RecentPurchase{
		ProductID: p.ID,
		Thumbnail: p.Thumbnail(),
		Name:      p.Name,
		Price:     p.Price,
	}
}
