// Package mocks provides testify mocks for the service interfaces, used by
// the handler tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbbtt/next-mall/internal/catalog"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListProducts(ctx context.Context, query catalog.Query) (*models.ProductListResponse, error) {
	args := m.Called(ctx, query)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ProductListResponse), args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) CreateProduct(ctx context.Context, userID string, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Analytics(ctx context.Context) (*models.AnalyticsSummary, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AnalyticsSummary), args.Error(1)
}

func (m *MockProductService) InStockSnapshot(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Product), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartItem, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartItem, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (*models.WishlistResponse, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.WishlistResponse), args.Error(1)
}

func (m *MockWishlistService) AddItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

func (m *MockWishlistService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ChatResponse), args.Error(1)
}

func (m *MockAssistantService) GenerateDescription(ctx context.Context, req *models.GenerateDescriptionRequest) (*models.GenerateDescriptionResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.GenerateDescriptionResponse), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendContactMessage(ctx context.Context, req *models.ContactRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
