package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sbbtt/next-mall/internal/api/handlers"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChatHandler_Chat(t *testing.T) {

	chatBody := `{"messages": [{"role": "user", "text": "recommend a sofa"}]}`

	t.Run("returns the assistant reply", func(t *testing.T) {
		// Arrange
		assistant := new(mocks.MockAssistantService)
		limiter := new(mocks.MockLimiter)
		handler := handlers.NewChatHandler(assistant, limiter)

		limiter.On("Allow", mock.Anything, mock.Anything).Return(true, time.Duration(0), nil)
		assistant.On("Chat", mock.Anything, mock.MatchedBy(func(req *models.ChatRequest) bool {
			return len(req.Messages) == 1 && req.Messages[0].Text == "recommend a sofa"
		})).Return(&models.ChatResponse{
			Message:  "The cloud sofa fits most rooms.",
			Products: []models.ProductRecommendation{{ID: 1, Name: "Cloud Sofa"}},
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody))
		rec := httptest.NewRecorder()

		// Act
		handler.Chat().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cloud Sofa")
	})

	t.Run("rate limited requests get a 429", func(t *testing.T) {
		// Arrange
		assistant := new(mocks.MockAssistantService)
		limiter := new(mocks.MockLimiter)
		handler := handlers.NewChatHandler(assistant, limiter)

		limiter.On("Allow", mock.Anything, mock.Anything).Return(false, 42*time.Second, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody))
		rec := httptest.NewRecorder()

		// Act
		handler.Chat().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "42s")
		assistant.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})

	t.Run("a broken limiter fails open", func(t *testing.T) {
		// Arrange
		assistant := new(mocks.MockAssistantService)
		limiter := new(mocks.MockLimiter)
		handler := handlers.NewChatHandler(assistant, limiter)

		limiter.On("Allow", mock.Anything, mock.Anything).Return(false, time.Duration(0), errors.New("redis down"))
		assistant.On("Chat", mock.Anything, mock.Anything).
			Return(&models.ChatResponse{Message: "ok", Products: []models.ProductRecommendation{}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody))
		rec := httptest.NewRecorder()

		// Act
		handler.Chat().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assistant.AssertExpectations(t)
	})

	t.Run("invalid role fails validation", func(t *testing.T) {
		// Arrange
		assistant := new(mocks.MockAssistantService)
		limiter := new(mocks.MockLimiter)
		handler := handlers.NewChatHandler(assistant, limiter)

		limiter.On("Allow", mock.Anything, mock.Anything).Return(true, time.Duration(0), nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages": [{"role": "system", "text": "hi"}]}`))
		rec := httptest.NewRecorder()

		// Act
		handler.Chat().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assistant.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})

	t.Run("assistant failure surfaces the upstream envelope", func(t *testing.T) {
		// Arrange
		assistant := new(mocks.MockAssistantService)
		limiter := new(mocks.MockLimiter)
		handler := handlers.NewChatHandler(assistant, limiter)

		limiter.On("Allow", mock.Anything, mock.Anything).Return(true, time.Duration(0), nil)
		assistant.On("Chat", mock.Anything, mock.Anything).
			Return(nil, appErrors.UpstreamError("Sorry, the shopping assistant is unavailable right now. Please try again in a moment."))

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody))
		rec := httptest.NewRecorder()

		// Act
		handler.Chat().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), appErrors.ErrCodeUpstreamError)
	})
}
