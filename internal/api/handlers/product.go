package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sbbtt/next-mall/internal/api/middleware"
	"github.com/sbbtt/next-mall/internal/catalog"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	service "github.com/sbbtt/next-mall/internal/services"
	"github.com/sbbtt/next-mall/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// Malformed filter params degrade to defaults, they never 400.
		query := catalog.ParseQuery(r.URL.Query())

		resp, err := h.productService.ListProducts(r.Context(), query)
		if err != nil {
			logger.Error("Product listing failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))

			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Product lookup failed", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
