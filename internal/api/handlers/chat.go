package handlers

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sbbtt/next-mall/internal/api/middleware"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/metrics"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/internal/ratelimit"
	service "github.com/sbbtt/next-mall/internal/services"
	"github.com/sbbtt/next-mall/internal/utils"
	"github.com/sbbtt/next-mall/internal/utils/response"
)

type ChatHandler struct {
	assistantService service.AssistantService
	limiter          ratelimit.Limiter
	validator        *validator.Validate
}

func NewChatHandler(assistantService service.AssistantService, limiter ratelimit.Limiter) *ChatHandler {
	return &ChatHandler{
		assistantService: assistantService,
		limiter:          limiter,
		validator:        validator.New(),
	}
}

func (h *ChatHandler) Chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if h.limiter != nil {
			allowed, retryAfter, err := h.limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				// a broken limiter must not take the assistant down
				logger.Warn("Rate limiter unavailable", slog.String("error", err.Error()))
			} else if !allowed {
				metrics.ObserveAssistantRequest("rate_limited")
				response.Error(w, appErrors.TooManyRequestsError("Too many messages, slow down a little").
					WithDetail(fmt.Sprintf("Retry after %s", retryAfter.Round(time.Second))))

				return
			}
		}

		var req models.ChatRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.assistantService.Chat(r.Context(), &req)
		if err != nil {
			metrics.ObserveAssistantRequest("error")
			logger.Error("Chat request failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		metrics.ObserveAssistantRequest("ok")
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *ChatHandler) GenerateDescription() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.GenerateDescriptionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.assistantService.GenerateDescription(r.Context(), &req)
		if err != nil {
			logger.Error("Description generation failed", slog.String("productName", req.ProductName), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// clientKey picks the rate-limit identity: the authenticated user when there
// is one, the caller's address otherwise.
func clientKey(r *http.Request) string {

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserID.String()
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
