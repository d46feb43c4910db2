package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sbbtt/next-mall/internal/models"
	repository "github.com/sbbtt/next-mall/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRows = []string{"id", "name", "description", "price", "category", "image", "in_stock", "created_by", "created_at", "updated_at"}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("ListInStock", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`SELECT (.+) FROM products WHERE in_stock = TRUE ORDER BY id`).
				WillReturnRows(sqlmock.NewRows(productRows).
					AddRow(1, "Modern Velvet Sofa", "Deep seats", 489000, "furniture", "https://img.example/sofa", true, nil, now, now).
					AddRow(2, "Pendant Light Fixture", "Geometric", 125000, "lighting", "https://img.example/light", true, nil, now, now))

			// Act
			products, err := repo.ListInStock(ctx)

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, "Modern Velvet Sofa", products[0].Name)
			assert.Equal(t, int64(125000), products[1].Price)
			assert.Empty(t, products[0].CreatedBy)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Query Error", func(t *testing.T) {
			mock.ExpectQuery(`SELECT (.+) FROM products WHERE in_stock = TRUE`).
				WillReturnError(errors.New("connection refused"))

			products, err := repo.ListInStock(ctx)

			assert.Error(t, err)
			assert.Nil(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetByID", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
				WithArgs(int64(7)).
				WillReturnRows(sqlmock.NewRows(productRows).
					AddRow(7, "Marble Side Table", "Natural marble top", 198000, "furniture", "https://img.example/table", true, "a6f1", now, now))

			product, err := repo.GetByID(ctx, 7)

			require.NoError(t, err)
			assert.Equal(t, int64(7), product.ID)
			assert.Equal(t, "a6f1", product.CreatedBy)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found", func(t *testing.T) {
			mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
				WithArgs(int64(404)).
				WillReturnError(sql.ErrNoRows)

			product, err := repo.GetByID(ctx, 404)

			assert.Nil(t, product)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			product := &models.Product{
				Name:        "Wooden Bookshelf",
				Description: "Open oak shelving",
				Price:       275000,
				Category:    "furniture",
				Image:       "https://img.example/shelf",
				InStock:     true,
			}

			expectedSQL := regexp.QuoteMeta(`INSERT INTO products (name, description, price, category, image, in_stock, created_by) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')) RETURNING id, created_at, updated_at`)

			mock.ExpectQuery(expectedSQL).
				WithArgs(product.Name, product.Description, product.Price, product.Category, product.Image, product.InStock, "").
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(51, now, now))

			err := repo.Create(ctx, product)

			require.NoError(t, err)
			assert.Equal(t, int64(51), product.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Insert Error", func(t *testing.T) {
			product := &models.Product{Name: "x", Price: 1, Category: "decor"}
			dbError := errors.New("insert failed")

			mock.ExpectQuery(`INSERT INTO products`).WillReturnError(dbError)

			err := repo.Create(ctx, product)

			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("Update", func(t *testing.T) {
		product := &models.Product{
			ID:       3,
			Name:     "Industrial Coffee Table",
			Price:    159000,
			Category: "furniture",
			InStock:  false,
		}

		mock.ExpectQuery(`UPDATE products SET (.+) WHERE id = \$7 RETURNING updated_at`).
			WithArgs(product.Name, product.Description, product.Price, product.Category, product.Image, product.InStock, product.ID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		err := repo.Update(ctx, product)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CountAll", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		total, err := repo.CountAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, 42, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
