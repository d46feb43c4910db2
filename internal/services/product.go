package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sbbtt/next-mall/internal/cache"
	"github.com/sbbtt/next-mall/internal/catalog"
	"github.com/sbbtt/next-mall/internal/config"
	appErrors "github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/metrics"
	"github.com/sbbtt/next-mall/internal/models"
	repository "github.com/sbbtt/next-mall/internal/repositories"
	"github.com/sbbtt/next-mall/pkg/unsplash"
)

// PlaceholderImage is the last resort when neither the seller nor the image
// search produced a picture.
const PlaceholderImage = "https://images.unsplash.com/photo-1518791841217-8f162f1e1131?w=800&q=80"

type ProductService interface {
	ListProducts(ctx context.Context, query catalog.Query) (*models.ProductListResponse, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, userID string, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	Analytics(ctx context.Context) (*models.AnalyticsSummary, error)

	// InStockSnapshot is the cached catalog view shared by the listing
	// endpoint and the shopping assistant.
	InStockSnapshot(ctx context.Context) ([]models.Product, error)
}

type productService struct {
	repo      repository.ProductRepository
	cache     cache.Cache
	cacheCfg  *config.CacheConfig
	images    unsplash.Client
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, cacheCfg *config.CacheConfig, images unsplash.Client) ProductService {
	return &productService{
		repo:      repo,
		cache:     c,
		cacheCfg:  cacheCfg,
		images:    images,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) InStockSnapshot(ctx context.Context) ([]models.Product, error) {

	var snapshot []models.Product

	if s.cache != nil {
		found, err := s.cache.Get(ctx, cache.CatalogKey, &snapshot)
		if err != nil {
			// a broken cache degrades to a DB read
			slog.Warn("Catalog cache read failed", slog.String("error", err.Error()))
		} else if found {
			metrics.ObserveCatalogCache("hit")

			return snapshot, nil
		}
	}

	metrics.ObserveCatalogCache("miss")

	snapshot, err := s.repo.ListInStock(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CatalogKey, snapshot, s.cacheCfg.CatalogTTL); err != nil {
			slog.Warn("Catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return snapshot, nil
}

func (s *productService) ListProducts(ctx context.Context, query catalog.Query) (*models.ProductListResponse, error) {

	snapshot, err := s.InStockSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	page := catalog.Apply(snapshot, query)

	return &models.ProductListResponse{Products: page.Products, Total: page.Total}, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, userID string, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Name:        strings.TrimSpace(s.sanitizer.Sanitize(req.Name)),
		Description: strings.TrimSpace(s.sanitizer.Sanitize(req.Description)),
		Price:       req.Price,
		Category:    strings.ToLower(req.Category),
		Image:       req.Image,
		InStock:     true,
		CreatedBy:   userID,
	}

	if product.Name == "" {
		return nil, appErrors.ValidationError("Product name is required")
	}

	if product.Image == "" {
		product.Image = s.findImage(ctx, product.Category, product.Name)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithDetail(err.Error()).WithError(err)
	}

	s.invalidateSnapshot(ctx)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(s.sanitizer.Sanitize(*req.Name))
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(s.sanitizer.Sanitize(*req.Description))
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = strings.ToLower(*req.Category)
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithDetail(err.Error()).WithError(err)
	}

	s.invalidateSnapshot(ctx)

	return product, nil
}

func (s *productService) Analytics(ctx context.Context) (*models.AnalyticsSummary, error) {

	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch analytics").WithError(err)
	}

	// Placeholder dashboard figures until order tracking lands.
	return &models.AnalyticsSummary{
		TotalRevenue:   12450000,
		TotalOrders:    156,
		TotalVisitors:  8920,
		ConversionRate: 1.75,
		ProductCount:   count,
		MonthlySales: []models.MonthlySale{
			{Month: "Jan", Revenue: 1850000},
			{Month: "Feb", Revenue: 2100000},
			{Month: "Mar", Revenue: 1920000},
			{Month: "Apr", Revenue: 2480000},
			{Month: "May", Revenue: 2250000},
			{Month: "Jun", Revenue: 1850000},
		},
	}, nil
}

// findImage walks the fallback chain: category+name search, category-only
// search, fixed placeholder. Search failures just move to the next step.
func (s *productService) findImage(ctx context.Context, category, name string) string {

	if s.images == nil {
		return PlaceholderImage
	}

	query := strings.TrimSpace(category + " " + name)

	imageURL, err := s.images.SearchImage(ctx, query)
	if err != nil {
		slog.Warn("Image search failed", slog.String("query", query), slog.String("error", err.Error()))
	}

	if imageURL == "" {
		imageURL, err = s.images.SearchImage(ctx, category)
		if err != nil {
			slog.Warn("Image search failed", slog.String("query", category), slog.String("error", err.Error()))
		}
	}

	if imageURL == "" {
		return PlaceholderImage
	}

	return imageURL
}

func (s *productService) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, cache.CatalogKey); err != nil {
		slog.Warn("Catalog cache invalidation failed", slog.String("error", err.Error()))

		return
	}

	metrics.ObserveCatalogCache("invalidate")
}
