package mocks

import (
	"context"

	"storefront-server/internal/models"
	"storefront-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock ProductDraftRepository
type ProductDraftRepository struct {
	mock.Mock
}

func (m *ProductDraftRepository) Create(ctx context.Context, querier repository.DBTX, draft *models.ProductDraft) error {
	args := m.Called(ctx, querier, draft)
	return args.Error(0)
}

func (m *ProductDraftRepository) GetByID(ctx context.Context, querier repository.DBTX, id, ownerID uuid.UUID) (*models.ProductDraft, error) {
	args := m.Called(ctx, querier, id, ownerID)
	draft, _ := args.Get(0).(*models.ProductDraft)
	return draft, args.Error(1)
}

func (m *ProductDraftRepository) Update(ctx context.Context, querier repository.DBTX, draft *models.ProductDraft) error {
	args := m.Called(ctx, querier, draft)
	return args.Error(0)
}

func (m *ProductDraftRepository) Delete(ctx context.Context, querier repository.DBTX, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, querier, id, ownerID)
	return args.Error(0)
}

func (m *ProductDraftRepository) ListByOwner(ctx context.Context, querier repository.DBTX, ownerID uuid.UUID, cursor string, limit int) ([]models.ProductDraft, string, error) {
	args := m.Called(ctx, querier, ownerID, cursor, limit)
	drafts, _ := args.Get(0).([]models.ProductDraft)
	return drafts, args.String(1), args.Error(2)
}

// Mock ProductRepository
type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) Create(ctx context.Context, querier repository.DBTX, product *models.Product) error {
	args := m.Called(ctx, querier, product)
	return args.Error(0)
}

func (m *ProductRepository) GetByID(ctx context.Context, querier repository.DBTX, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, querier, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductRepository) List(ctx context.Context, querier repository.DBTX, cursor string, limit int) ([]models.Product, string, error) {
	args := m.Called(ctx, querier, cursor, limit)
	products, _ := args.Get(0).([]models.Product)
	return products, args.String(1), args.Error(2)
}

// Mock ProductCache
type ProductCache struct {
	mock.Mock
}

func (m *ProductCache) GetFirstPage(ctx context.Context) ([]models.Product, bool) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Bool(1)
}

func (m *ProductCache) SetFirstPage(ctx context.Context, products []models.Product) {
	m.Called(ctx, products)
}

func (m *ProductCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
