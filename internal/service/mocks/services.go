package mocks

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock DraftService
type DraftService struct {
	mock.Mock
}

func (m *DraftService) CreateDraft(ctx context.Context, ownerID uuid.UUID, doc models.DraftDocument) (*models.ProductDraft, error) {
	args := m.Called(ctx, ownerID, doc)
	draft, _ := args.Get(0).(*models.ProductDraft)
	return draft, args.Error(1)
}

func (m *DraftService) GetDraft(ctx context.Context, ownerID, draftID uuid.UUID) (*models.ProductDraft, error) {
	args := m.Called(ctx, ownerID, draftID)
	draft, _ := args.Get(0).(*models.ProductDraft)
	return draft, args.Error(1)
}

func (m *DraftService) UpdateDraft(ctx context.Context, ownerID, draftID uuid.UUID, doc models.DraftDocument) (*models.ProductDraft, error) {
	args := m.Called(ctx, ownerID, draftID, doc)
	draft, _ := args.Get(0).(*models.ProductDraft)
	return draft, args.Error(1)
}

func (m *DraftService) DeleteDraft(ctx context.Context, ownerID, draftID uuid.UUID) error {
	args := m.Called(ctx, ownerID, draftID)
	return args.Error(0)
}

func (m *DraftService) ListDrafts(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.ProductDraft, string, error) {
	args := m.Called(ctx, ownerID, cursor, limit)
	drafts, _ := args.Get(0).([]models.ProductDraft)
	return drafts, args.String(1), args.Error(2)
}

// Mock PublishService
type PublishService struct {
	mock.Mock
}

func (m *PublishService) Publish(ctx context.Context, ownerID, draftID uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, ownerID, draftID)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

// Mock CatalogService
type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, cursor string, limit int) ([]models.Product, string, error) {
	args := m.Called(ctx, cursor, limit)
	products, _ := args.Get(0).([]models.Product)
	return products, args.String(1), args.Error(2)
}
