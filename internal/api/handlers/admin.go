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

// AdminHandler serves the admin panel: product management, description
// generation and the analytics dashboard. Routes are mounted behind the auth
// middleware.
type AdminHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewAdminHandler(productService service.ProductService) *AdminHandler {
	return &AdminHandler{productService: productService, validator: validator.New()}
}

func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		// validation happens before any write
		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), claims.UserID.String(), &req)
		if err != nil {
			logger.Error("Product creation failed", slog.String("name", req.Name), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, models.CreateProductResponse{Success: true, Product: product})
	}
}

func (h *AdminHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))

			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Product update failed", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product updated", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *AdminHandler) Analytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		summary, err := h.productService.Analytics(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Analytics fetch failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
