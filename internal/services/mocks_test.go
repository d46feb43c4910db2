package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/pkg/gemini"
	sendgridsdk "github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) ListInStock(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *mockProductRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *mockCartRepository) GetQuantity(ctx context.Context, userID uuid.UUID, productID int64) (int, error) {
	args := m.Called(ctx, userID, productID)

	return args.Int(0), args.Error(1)
}

func (m *mockCartRepository) Insert(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)

	return args.Error(0)
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	args := m.Called(ctx, userID, productID, quantity)

	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID uuid.UUID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

type mockWishlistRepository struct {
	mock.Mock
}

func (m *mockWishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]int64, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockWishlistRepository) Exists(ctx context.Context, userID uuid.UUID, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)

	return args.Bool(0), args.Error(1)
}

func (m *mockWishlistRepository) Insert(ctx context.Context, userID uuid.UUID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

func (m *mockWishlistRepository) Delete(ctx context.Context, userID uuid.UUID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)

	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *mockCache) Close() error {
	args := m.Called()

	return args.Error(0)
}

type mockImageClient struct {
	mock.Mock
}

func (m *mockImageClient) SearchImage(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)

	return args.String(0), args.Error(1)
}

type mockGeminiClient struct {
	mock.Mock
}

func (m *mockGeminiClient) GenerateContent(ctx context.Context, prompt string, cfg gemini.GenerationConfig) (string, error) {
	args := m.Called(ctx, prompt, cfg)

	return args.String(0), args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) Send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	args := m.Called(ctx, to, subject, plainText, htmlContent)

	return args.Error(0)
}

func (m *mockEmailService) GetSendGridClient() *sendgridsdk.Client {
	return nil
}
