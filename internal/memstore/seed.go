package memstore

import (
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultSeed is a small catalog used when no upstream source is configured.
func DefaultSeed() port.Seed {
	price := decimal.RequireFromString

	return port.Seed{
		Products: []domain.Product{
			{
				ID: 1, Name: "Aged Gouda", Description: "Nutty and sweet",
				Images: []string{"/images/gouda-1.png"}, Rating: price("4.7"),
				Price: price("12.99"), Stock: 10, Variant: domain.Cheese{},
			},
			{
				ID: 2, Name: "Camembert", Description: "Soft and creamy",
				Images: []string{"/images/camembert-1.png"}, Rating: price("4.5"),
				Price: price("9.5"), Stock: 8, Variant: domain.Cheese{},
			},
			{
				ID: 3, Name: "Rice Crackers", Description: "Light and crispy",
				Images: []string{"/images/rice-crackers-1.png"}, Rating: price("4.2"),
				Price: price("4"), Stock: 20, Variant: domain.Cracker{GlutenFree: true},
			},
			{
				ID: 4, Name: "Water Crackers", Description: "Classic pairing",
				Images: []string{"/images/water-crackers-1.png"}, Rating: price("4.0"),
				Price: price("3.25"), Stock: 15, Variant: domain.Cracker{},
			},
			{
				ID: 5, Name: "Earl Grey", Description: "Bergamot black tea",
				Images: []string{"/images/earl-grey-1.png"}, Rating: price("4.6"),
				Price: price("7.8"), Stock: 12, Variant: domain.Tea{},
			},
			{
				ID: 6, Name: "Chamomile", Description: "Calming herbal tea",
				Images: []string{"/images/chamomile-1.png"}, Rating: price("4.4"),
				Price: price("6.5"), Stock: 0, Variant: domain.Tea{CaffeineFree: true},
			},
		},
		Recommendations: map[int64][]int64{
			1: {3, 5},
			2: {4, 6},
			3: {1, 2},
			4: {2},
			5: {1, 3},
			6: {2, 4},
		},
		Rates: domain.ExchangeRates{
			currency.USD: decimal.NewFromInt(1),
			currency.KRW: decimal.NewFromInt(1300),
		},
		Thresholds: domain.DefaultGradeThresholds(),
		Policies:   domain.DefaultShippingPolicies(),
	}
}
