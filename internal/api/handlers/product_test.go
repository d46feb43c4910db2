package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbbtt/next-mall/internal/api/handlers"
	"github.com/sbbtt/next-mall/internal/catalog"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_ListProducts(t *testing.T) {

	t.Run("returns the filtered page", func(t *testing.T) {
		// Arrange
		productService := new(mocks.MockProductService)
		handler := handlers.NewProductHandler(productService)

		productService.On("ListProducts", mock.Anything, mock.MatchedBy(func(q catalog.Query) bool {
			return q.Category == models.CategoryLighting && q.Page == 2
		})).Return(&models.ProductListResponse{
			Products: []models.Product{{ID: 2, Name: "Linen Pendant Lamp"}},
			Total:    13,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products?category=lighting&page=2", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Success bool                       `json:"success"`
			Data    models.ProductListResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.Equal(t, 13, envelope.Data.Total)
		require.Len(t, envelope.Data.Products, 1)
	})

	t.Run("malformed params fall back to defaults instead of failing", func(t *testing.T) {
		// Arrange
		productService := new(mocks.MockProductService)
		handler := handlers.NewProductHandler(productService)

		productService.On("ListProducts", mock.Anything, mock.MatchedBy(func(q catalog.Query) bool {
			return q.Page == 1 && q.Sort == catalog.SortDefault
		})).Return(&models.ProductListResponse{Products: []models.Product{}, Total: 0}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/products?page=banana&sort=tallest", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		productService.AssertExpectations(t)
	})

	t.Run("service failure maps to the error envelope", func(t *testing.T) {
		// Arrange
		productService := new(mocks.MockProductService)
		handler := handlers.NewProductHandler(productService)

		productService.On("ListProducts", mock.Anything, mock.Anything).
			Return(nil, appErrors.DatabaseError("Failed to fetch products"))

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), appErrors.ErrCodeDatabaseError)
	})
}

func TestProductHandler_GetProduct(t *testing.T) {

	t.Run("returns the product", func(t *testing.T) {
		// Arrange
		productService := new(mocks.MockProductService)
		handler := handlers.NewProductHandler(productService)

		productService.On("GetProduct", mock.Anything, int64(7)).
			Return(&models.Product{ID: 7, Name: "Oak Coffee Table"}, nil)

		mux := http.NewServeMux()
		mux.Handle("GET /api/products/{id}", handler.GetProduct())

		req := httptest.NewRequest(http.MethodGet, "/api/products/7", nil)
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Oak Coffee Table")
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		// Arrange
		productService := new(mocks.MockProductService)
		handler := handlers.NewProductHandler(productService)

		mux := http.NewServeMux()
		mux.Handle("GET /api/products/{id}", handler.GetProduct())

		req := httptest.NewRequest(http.MethodGet, "/api/products/lamp", nil)
		rec := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		productService.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
	})
}
