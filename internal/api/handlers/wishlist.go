package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sbbtt/next-mall/internal/api/middleware"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	service "github.com/sbbtt/next-mall/internal/services"
	"github.com/sbbtt/next-mall/internal/utils"
	"github.com/sbbtt/next-mall/internal/utils/response"
)

type WishlistHandler struct {
	wishlistService service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, validator: validator.New()}
}

func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		wishlist, err := h.wishlistService.GetWishlist(r.Context(), claims.UserID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Wishlist fetch failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddWishlistItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.wishlistService.AddItem(r.Context(), claims.UserID, req.ProductID); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Wishlist add failed", slog.Int64("productId", req.ProductID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"added": true})
	}
}

func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid productId"))

			return
		}

		if err := h.wishlistService.RemoveItem(r.Context(), claims.UserID, productID); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Wishlist remove failed", slog.Int64("productId", productID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"removed": true})
	}
}
