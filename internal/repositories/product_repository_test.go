package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductRepoTest(t *testing.T) (repository.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewProductRepo(db)
	require.NotNil(t, repo, "NewProductRepo should return a non-nil repository")

	return repo, mock
}

func productColumns(withWholesaler bool) []string {
	cols := []string{
		"id", "wholesaler_id", "name", "category", "price", "stock",
		"group_buy_eligible", "image_path", "views", "likes", "status", "created_at",
	}
	if withWholesaler {
		cols = append(cols, "w_name", "trust_score")
	}

	return cols
}

func TestCreateProductQuery(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Scans Generated ID", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		product := &models.Product{
			WholesalerID: 1, Name: "Onions 10kg", Category: "Vegetables",
			Price: 40, Stock: 60, Status: models.ProductStatusInStock,
		}

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
			WithArgs(int64(1), "Onions 10kg", "Vegetables", 40.0, 60, false, "", models.ProductStatusInStock).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))

		// Act
		err := repo.CreateProduct(ctx, product)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(10), product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Includes Wholesaler Join Columns", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("JOIN wholesalers w ON p.wholesaler_id = w.id")).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows(productColumns(true)).
				AddRow(int64(10), int64(1), "Onions 10kg", "Vegetables", 40.0, 60,
					false, "", 500, 12, models.ProductStatusInStock, time.Now(),
					"Azad Mandi Traders", 4.5))

		// Act
		product, err := repo.GetProductByID(ctx, 10)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Azad Mandi Traders", product.WholesalerName)
		assert.Equal(t, 4.5, product.TrustScore)
	})

	t.Run("Failure - Not Found Passes Through sql.ErrNoRows", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("JOIN wholesalers w ON p.wholesaler_id = w.id")).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		// Act
		product, err := repo.GetProductByID(ctx, 404)

		// Assert
		assert.Nil(t, product)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUpdateStockQuery(t *testing.T) {
	ctx := t.Context()

	updateSQL := regexp.QuoteMeta("UPDATE products SET stock = $1, status = $2 WHERE id = $3 AND wholesaler_id = $4")

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectExec(updateSQL).
			WithArgs(30, models.ProductStatusLowStock, int64(10), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateStock(ctx, 10, 1, 30, models.ProductStatusLowStock)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Ownership Mismatch Maps To sql.ErrNoRows", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectExec(updateSQL).
			WithArgs(30, models.ProductStatusLowStock, int64(10), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateStock(ctx, 10, 42, 30, models.ProductStatusLowStock)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestSearchQuery(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Wraps Query In Wildcards", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("p.name ILIKE $1")).
			WithArgs("%onion%").
			WillReturnRows(sqlmock.NewRows(productColumns(true)).
				AddRow(int64(10), int64(1), "Onions 10kg", "Vegetables", 40.0, 60,
					false, "", 500, 12, models.ProductStatusInStock, time.Now(),
					"Azad Mandi Traders", 4.5))

		// Act
		products, err := repo.Search(ctx, "onion")

		// Assert
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestFilterQuery(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Budget And Category Clauses Are Appended In Order", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("AND p.price <= $1 AND p.category = $2 ORDER BY p.price ASC LIMIT $3")).
			WithArgs(100.0, "Vegetables", 20).
			WillReturnRows(sqlmock.NewRows(productColumns(true)))

		// Act
		products, err := repo.Filter(ctx, &models.FilterProductsRequest{
			MaxBudget: 100, Category: "Vegetables", SortBy: "Price Low to High", Limit: 20,
		})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - All Categories Sentinel Adds No Category Clause", func(t *testing.T) {
		// Arrange
		repo, mock := setupProductRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.views DESC")).
			WillReturnRows(sqlmock.NewRows(productColumns(true)))

		// Act
		products, err := repo.Filter(ctx, &models.FilterProductsRequest{Category: "All Categories"})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, products)
	})
}
