package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nikolayk812/shopcore/internal/db"
	"github.com/nikolayk812/shopcore/internal/domain"
)

func mapProductToDomain(row db.Product) (domain.Product, error) {
	variant, err := domain.NewVariant(domain.Category(row.Category), row.GlutenFree.Bool, row.CaffeineFree.Bool)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", row.ID, err)
	}

	return domain.Product{
		ID:                row.ID,
		Name:              row.Name,
		Description:       row.Description,
		DetailDescription: row.DetailDescription,
		Images:            row.Images,
		Rating:            row.Rating,
		Price:             row.Price,
		Stock:             int(row.Stock),
		Variant:           variant,
	}, nil
}

func mapProductsToDomain(rows []db.Product) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(rows))

	for _, row := range rows {
		p, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

// mapProductToUpsert stores only the flag of the product's own variant.
func mapProductToUpsert(p domain.Product) db.UpsertProductParams {
	params := db.UpsertProductParams{
		ID:                p.ID,
		Category:          string(p.Category()),
		Name:              p.Name,
		Description:       p.Description,
		DetailDescription: p.DetailDescription,
		Images:            p.Images,
		Rating:            p.Rating,
		Price:             p.Price,
		Stock:             int32(p.Stock),
	}
	if params.Images == nil {
		params.Images = []string{}
	}

	switch v := p.Variant.(type) {
	case domain.Cracker:
		params.GlutenFree = pgtype.Bool{Bool: v.GlutenFree, Valid: true}
	case domain.Tea:
		params.CaffeineFree = pgtype.Bool{Bool: v.CaffeineFree, Valid: true}
	}

	return params
}

func mapRecentRowsToDomain(rows []db.ListRecentPurchasesRow) []domain.RecentPurchase {
	recent := make([]domain.RecentPurchase, 0, len(rows))

	for _, row := range rows {
		recent = append(recent, domain.RecentPurchase{
			ProductID: row.ProductID,
			Thumbnail: row.Thumbnail,
			Name:      row.Name,
			Price:     row.Price,
		})
	}

	return recent
}

func mapAccountToDomain(row db.Account) (domain.LoyaltyState, error) {
	grade, err := domain.ParseGrade(row.Grade)
	if err != nil {
		return domain.LoyaltyState{}, fmt.Errorf("account %s: %w", row.OwnerID, err)
	}

	return domain.LoyaltyState{Points: row.Points, Grade: grade}, nil
}
