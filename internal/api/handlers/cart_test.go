package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sbbtt/next-mall/internal/api/handlers"
	"github.com/sbbtt/next-mall/internal/api/middleware"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target string, body string, userID uuid.UUID) *http.Request {

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	claims := &models.Claims{UserID: userID, Email: "shopper@example.com"}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

func TestCartHandler_GetCart(t *testing.T) {

	t.Run("unauthenticated request gets a 401 envelope", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.MockCartService)
		handler := handlers.NewCartHandler(cartService)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var envelope struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.False(t, envelope.Success)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, envelope.Error.Code)
		assert.Equal(t, "Authentication required", envelope.Error.Message)
		cartService.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})

	t.Run("returns the cart for the authenticated user", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.MockCartService)
		handler := handlers.NewCartHandler(cartService)
		userID := uuid.New()

		cartService.On("GetCart", mock.Anything, userID).Return(&models.CartResponse{
			CartItems: []models.CartItem{{ProductID: 3, Quantity: 2}},
		}, nil)

		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", "", userID))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"quantity":2`)
	})
}

func TestCartHandler_AddItem(t *testing.T) {

	userID := uuid.New()

	t.Run("adds an item", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.MockCartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("AddItem", mock.Anything, userID, mock.MatchedBy(func(req *models.AddCartItemRequest) bool {
			return req.ProductID == 5 && req.Quantity == 2
		})).Return(&models.CartItem{ProductID: 5, Quantity: 2}, nil)

		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart", `{"productId": 5, "quantity": 2}`, userID))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		cartService.AssertExpectations(t)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.MockCartService)
		handler := handlers.NewCartHandler(cartService)

		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart", "", userID))

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		cartService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	// Arrange
	cartService := new(mocks.MockCartService)
	handler := handlers.NewCartHandler(cartService)
	userID := uuid.New()

	cartService.On("UpdateQuantity", mock.Anything, userID, mock.MatchedBy(func(req *models.UpdateCartItemRequest) bool {
		return req.ProductID == 5 && req.Quantity == 0
	})).Return(&models.CartItem{ProductID: 5, Quantity: 1}, nil)

	rec := httptest.NewRecorder()

	// Act
	handler.UpdateQuantity().ServeHTTP(rec, authedRequest(http.MethodPatch, "/api/cart", `{"productId": 5, "quantity": 0}`, userID))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":1`)
}

func TestCartHandler_RemoveItem(t *testing.T) {

	userID := uuid.New()

	t.Run("removes an item", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.MockCartService)
		handler := handlers.NewCartHandler(cartService)

		cartService.On("RemoveItem", mock.Anything, userID, int64(5)).Return(nil)

		rec := httptest.NewRecorder()

		// Act
		handler.RemoveItem().ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart?productId=5", "", userID))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		cartService.AssertExpectations(t)
	})

	t.Run("missing productId is a bad request", func(t *testing.T) {
		// Arrange
		cartService := new(mocks.MockCartService)
		handler := handlers.NewCartHandler(cartService)

		rec := httptest.NewRecorder()

		// Act
		handler.RemoveItem().ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart", "", userID))

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		cartService.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything, mock.Anything)
	})
}
