package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/memstore"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/nikolayk812/shopcore/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

type catalogRepositorySuite struct {
	suite.Suite

	repo      repository.CatalogRepository
	seed      port.Seed
	pool      *pgxpool.Pool
	container testcontainers.Container
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

func (suite *catalogRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCatalog(suite.pool)
	suite.seed = memstore.DefaultSeed()

	suite.Require().NoError(suite.repo.Load(ctx, suite.seed))
}

func (suite *catalogRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		_ = testcontainers.TerminateContainer(suite.container)
	}
}

func (suite *catalogRepositorySuite) TestListProducts() {
	t := suite.T()

	products, err := suite.repo.ListProducts(t.Context())
	require.NoError(t, err)

	diff := cmp.Diff(suite.seed.Products, products, decimalComparer)
	assert.Empty(t, diff)
}

func (suite *catalogRepositorySuite) TestLoadKeepsCommittedStock() {
	t := suite.T()
	ctx := t.Context()

	original := suite.seed.Products[4]
	defer func() {
		suite.Require().NoError(suite.repo.Load(ctx, suite.seed))
		_, err := suite.pool.Exec(ctx, "UPDATE products SET stock = $1 WHERE id = $2", original.Stock, original.ID)
		suite.Require().NoError(err)
	}()

	_, err := suite.pool.Exec(ctx, "UPDATE products SET stock = stock - 3 WHERE id = $1", original.ID)
	require.NoError(t, err)

	reseed := memstore.DefaultSeed()
	reseed.Products[4].Price = decimal.RequireFromString("8.1")

	require.NoError(t, suite.repo.Load(ctx, reseed))

	p, err := suite.repo.GetProduct(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Stock-3, p.Stock)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("8.1")), "price: %s", p.Price)
}

func (suite *catalogRepositorySuite) TestGetProduct() {
	tests := []struct {
		name    string
		id      int64
		want    domain.Product
		wantErr error
	}{
		{
			name: "gluten free cracker: ok",
			id:   3,
			want: suite.seed.Products[2],
		},
		{
			name: "caffeine free tea out of stock: ok",
			id:   6,
			want: suite.seed.Products[5],
		},
		{
			name:    "unknown product: not found",
			id:      int64(gofakeit.IntRange(1000, 2000)),
			wantErr: domain.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			p, err := suite.repo.GetProduct(t.Context(), tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			diff := cmp.Diff(tt.want, p, decimalComparer)
			assert.Empty(t, diff)
		})
	}
}

func (suite *catalogRepositorySuite) TestRecommendations() {
	t := suite.T()
	ctx := t.Context()

	ids, err := suite.repo.Recommendations(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, ids)

	_, err = suite.repo.Recommendations(ctx, 999)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *catalogRepositorySuite) TestReferenceData() {
	t := suite.T()
	ctx := t.Context()

	rates, err := suite.repo.ExchangeRates(ctx)
	require.NoError(t, err)
	assert.True(t, rates[currency.KRW].Equal(decimal.NewFromInt(1300)))

	thresholds, err := suite.repo.GradeThresholds(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(domain.DefaultGradeThresholds(), thresholds, decimalComparer))

	policies, err := suite.repo.ShippingPolicies(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(domain.DefaultShippingPolicies(), policies, decimalComparer))
}

func (suite *catalogRepositorySuite) TestNewOwnerDefaults() {
	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	loyalty, err := suite.repo.Loyalty(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, loyalty.Points.IsZero())
	assert.Equal(t, domain.GradeExplorer, loyalty.Grade)

	recent, err := suite.repo.RecentPurchases(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	for i, r := range recent {
		assert.Equal(t, suite.seed.Products[i].ID, r.ProductID)
	}

	_, err = suite.repo.Loyalty(ctx, "")
	require.EqualError(t, err, "ownerID is empty")
}
