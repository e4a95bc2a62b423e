package repository_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foodcart/internal/domain"
	"github.com/nikolayk812/foodcart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type catalogRepositorySuite struct {
	suite.Suite

	repo      *repository.CatalogRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

func (suite *catalogRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCatalog(suite.pool)
	suite.Require().NoError(err)
}

func (suite *catalogRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	suite.NoError(testcontainers.TerminateContainer(suite.container))
}

func (suite *catalogRepositorySuite) TestSaveAndGetCatalog() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	items := []domain.CatalogItem{
		{
			ID:          2,
			Name:        "Pepperoni",
			Description: "Pepperoni, mozzarella, and tomato sauce",
			BasePrice:   decimal.RequireFromString("9.99"),
			Image:       "https://example.com/pepperoni.jpg",
			Category:    domain.CategoryPizzas,
			Toppings: []domain.Topping{
				{Name: "olives", UnitPrice: decimal.RequireFromString("1.00")},
				{Name: "cheese", UnitPrice: decimal.RequireFromString("1.50")},
			},
		},
		{
			ID:          7,
			Name:        "Caesar Salad",
			Description: "Romaine lettuce, croutons, and Caesar dressing",
			BasePrice:   decimal.RequireFromString("6.99"),
			Category:    domain.CategorySalads,
		},
	}

	require.NoError(t, suite.repo.SaveCatalog(ctx, items))

	got, err := suite.repo.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(items, got, decimalComparer))

	// saving again rewrites toppings instead of appending
	items[0].Toppings = items[0].Toppings[:1]
	require.NoError(t, suite.repo.SaveCatalog(ctx, items))

	got, err = suite.repo.GetCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Toppings, 1)
}

func (suite *catalogRepositorySuite) TestSaveCatalog_Invalid() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	err := suite.repo.SaveCatalog(ctx, []domain.CatalogItem{
		{ID: 1, Name: "Odd", BasePrice: decimal.NewFromInt(1), Category: "Desserts"},
	})
	require.EqualError(t, err, "item.Validate: item[1]: category[Desserts] is not valid")

	err = suite.repo.SaveCatalog(ctx, []domain.CatalogItem{
		{ID: 1<<32 + 7, Name: "Wide", BasePrice: decimal.NewFromInt(1), Category: domain.CategoryPizzas},
	})
	require.EqualError(t, err, "item.Validate: id[4294967303] exceeds 2147483647")

	err = suite.repo.SaveCatalog(ctx, []domain.CatalogItem{
		{ID: 7, Name: "Fraction", BasePrice: decimal.RequireFromString("0.125"), Category: domain.CategoryPizzas},
	})
	require.EqualError(t, err, "item.Validate: item[7]: base price 0.125 has more than 2 decimal places")

	got, err := suite.repo.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func (suite *catalogRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE foods CASCADE")
	suite.NoError(err)
}
