package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcore/internal/domain"
	"github.com/nikolayk812/shopcore/internal/port"
	"github.com/nikolayk812/shopcore/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type cartRepositorySuite struct {
	suite.Suite

	repo      port.CartRepository
	pool      *pgxpool.Pool
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		_ = testcontainers.TerminateContainer(suite.container)
	}
}

func (suite *cartRepositorySuite) TestIncrease() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		setup     []domain.CartItem
		productID int64
		limit     int
		want      []domain.CartItem
		wantError string
		wantErrIs error
	}{
		{
			name:      "increase absent product: ok",
			ownerID:   gofakeit.UUID(),
			productID: 1,
			limit:     10,
			want:      []domain.CartItem{{ProductID: 1, Quantity: 1}},
		},
		{
			name:      "increase present product: ok",
			ownerID:   gofakeit.UUID(),
			setup:     []domain.CartItem{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}},
			productID: 1,
			limit:     10,
			want:      []domain.CartItem{{ProductID: 1, Quantity: 3}, {ProductID: 3, Quantity: 1}},
		},
		{
			name:      "increase at limit: error",
			ownerID:   gofakeit.UUID(),
			setup:     []domain.CartItem{{ProductID: 1, Quantity: 3}},
			productID: 1,
			limit:     3,
			wantErrIs: domain.ErrInsufficientStock,
		},
		{
			name:      "increase absent product with zero limit: error",
			ownerID:   gofakeit.UUID(),
			productID: 6,
			limit:     0,
			wantErrIs: domain.ErrInsufficientStock,
		},
		{
			name:      "increase with empty owner ID: error",
			ownerID:   "",
			productID: 1,
			limit:     10,
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.setup(tt.ownerID, tt.setup)

			cart, err := suite.repo.Increase(ctx, tt.ownerID, tt.productID, tt.limit)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)

				cart, err := suite.repo.GetCart(ctx, tt.ownerID)
				require.NoError(t, err)
				assertCartItems(t, tt.setup, cart.Items())
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			assertCartItems(t, tt.want, cart.Items())
		})
	}
}

func (suite *cartRepositorySuite) TestDecrease() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		setup     []domain.CartItem
		productID int64
		want      []domain.CartItem
	}{
		{
			name:      "decrease above one: ok",
			ownerID:   gofakeit.UUID(),
			setup:     []domain.CartItem{{ProductID: 2, Quantity: 3}},
			productID: 2,
			want:      []domain.CartItem{{ProductID: 2, Quantity: 2}},
		},
		{
			name:      "decrease at one removes the entry: ok",
			ownerID:   gofakeit.UUID(),
			setup:     []domain.CartItem{{ProductID: 2, Quantity: 1}, {ProductID: 4, Quantity: 1}},
			productID: 2,
			want:      []domain.CartItem{{ProductID: 4, Quantity: 1}},
		},
		{
			name:      "decrease absent product: no-op",
			ownerID:   gofakeit.UUID(),
			setup:     []domain.CartItem{{ProductID: 4, Quantity: 2}},
			productID: 5,
			want:      []domain.CartItem{{ProductID: 4, Quantity: 2}},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.setup(tt.ownerID, tt.setup)

			cart, err := suite.repo.Decrease(ctx, tt.ownerID, tt.productID)
			require.NoError(t, err)

			assertCartItems(t, tt.want, cart.Items())
		})
	}
}

func (suite *cartRepositorySuite) TestSetQuantity() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		setup     []domain.CartItem
		productID int64
		quantity  int
		want      []domain.CartItem
		wantErr   error
	}{
		{
			name:      "set quantity of absent product: ok",
			ownerID:   gofakeit.UUID(),
			productID: 5,
			quantity:  4,
			want:      []domain.CartItem{{ProductID: 5, Quantity: 4}},
		},
		{
			name:      "overwrite quantity: ok",
			ownerID:   gofakeit.UUID(),
			setup:     []domain.CartItem{{ProductID: 5, Quantity: 4}},
			productID: 5,
			quantity:  1,
			want:      []domain.CartItem{{ProductID: 5, Quantity: 1}},
		},
		{
			name:      "set zero quantity: error",
			ownerID:   gofakeit.UUID(),
			productID: 5,
			quantity:  0,
			wantErr:   domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.setup(tt.ownerID, tt.setup)

			cart, err := suite.repo.SetQuantity(ctx, tt.ownerID, tt.productID, tt.quantity)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assertCartItems(t, tt.want, cart.Items())
		})
	}
}

func (suite *cartRepositorySuite) TestDeleteItem() {
	defer suite.deleteAll()

	tests := []struct {
		name        string
		ownerID     string
		productID   int64
		setup       []domain.CartItem
		wantDeleted bool
		wantError   string
	}{
		{
			name:        "delete existing item: ok",
			ownerID:     gofakeit.UUID(),
			productID:   1,
			setup:       []domain.CartItem{{ProductID: 1, Quantity: 2}},
			wantDeleted: true,
		},
		{
			name:        "delete non-existing item: not found",
			ownerID:     gofakeit.UUID(),
			productID:   2,
			setup:       []domain.CartItem{{ProductID: 1, Quantity: 2}},
			wantDeleted: false,
		},
		{
			name:        "delete from empty cart: not found",
			ownerID:     gofakeit.UUID(),
			productID:   1,
			wantDeleted: false,
		},
		{
			name:      "delete with empty owner ID: error",
			ownerID:   "",
			productID: 1,
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.setup(tt.ownerID, tt.setup)

			deleted, err := suite.repo.DeleteItem(ctx, tt.ownerID, tt.productID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
		})
	}
}

func (suite *cartRepositorySuite) TestGetCartAndClear() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	ownerID := gofakeit.UUID()
	other := gofakeit.UUID()
	items := []domain.CartItem{{ProductID: 1, Quantity: 2}, {ProductID: 6, Quantity: 1}}

	suite.setup(ownerID, items)
	suite.setup(other, items)

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assertCartItems(t, items, cart.Items())

	require.NoError(t, suite.repo.Clear(ctx, ownerID))

	cart, err = suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = suite.repo.GetCart(ctx, other)
	require.NoError(t, err)
	assertCartItems(t, items, cart.Items())

	_, err = suite.repo.GetCart(ctx, "")
	require.EqualError(t, err, "ownerID is empty")
}

func (suite *cartRepositorySuite) TestCartWithTxFollowsCallerTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewCartWithTx(tx)

	cart, err := txRepo.Increase(ctx, ownerID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.QuantityOf(1))

	// not visible outside the caller's transaction
	cart, err = suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	require.NoError(t, tx.Rollback(ctx))

	cart, err = suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func (suite *cartRepositorySuite) setup(ownerID string, items []domain.CartItem) {
	for _, item := range items {
		_, err := suite.repo.SetQuantity(suite.T().Context(), ownerID, item.ProductID, item.Quantity)
		suite.Require().NoError(err)
	}
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_items CASCADE")
	suite.NoError(err)
}

func assertCartItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	if expected == nil {
		expected = []domain.CartItem{}
	}

	diff := cmp.Diff(expected, actual)
	assert.Empty(t, diff)
}
