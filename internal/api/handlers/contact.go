package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sbbtt/next-mall/internal/api/middleware"
	"github.com/sbbtt/next-mall/internal/models"
	service "github.com/sbbtt/next-mall/internal/services"
	"github.com/sbbtt/next-mall/internal/utils"
	"github.com/sbbtt/next-mall/internal/utils/response"
)

type ContactHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewContactHandler(notificationService service.NotificationService) *ContactHandler {
	return &ContactHandler{notificationService: notificationService, validator: validator.New()}
}

func (h *ContactHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.notificationService.SendContactMessage(r.Context(), &req); err != nil {
			logger.Error("Contact submission failed", slog.String("email", req.Email), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Contact message sent", slog.String("email", req.Email))
		response.Success(w, http.StatusOK, map[string]bool{"sent": true})
	}
}
