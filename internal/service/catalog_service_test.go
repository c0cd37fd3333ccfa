package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-server/internal/models"
	"storefront-server/internal/repository/mocks"
	"storefront-server/internal/service"
)

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("first page served from cache", func(t *testing.T) {
		mockProductRepo := new(mocks.ProductRepository)
		mockCache := new(mocks.ProductCache)
		svc := service.NewCatalogService(nil, mockProductRepo, mockCache, zap.NewNop())

		cached := []models.Product{{ID: uuid.New(), Name: "Walnut desk", PublishedAt: time.Now()}}
		mockCache.On("GetFirstPage", ctx).Return(cached, true).Once()

		products, cursor, err := svc.ListProducts(ctx, "", 0)

		assert.NoError(t, err)
		assert.Equal(t, cached, products)
		assert.Empty(t, cursor) // fewer than a full page, no next cursor
		mockProductRepo.AssertNotCalled(t, "List")
		mockCache.AssertExpectations(t)
	})

	t.Run("cache miss falls through and repopulates", func(t *testing.T) {
		mockProductRepo := new(mocks.ProductRepository)
		mockCache := new(mocks.ProductCache)
		svc := service.NewCatalogService(nil, mockProductRepo, mockCache, zap.NewNop())

		fromDB := []models.Product{{ID: uuid.New(), Name: "Walnut desk"}}
		mockCache.On("GetFirstPage", ctx).Return(nil, false).Once()
		mockProductRepo.On("List", ctx, nil, "", 20).Return(fromDB, "", nil).Once()
		mockCache.On("SetFirstPage", ctx, fromDB).Once()

		products, cursor, err := svc.ListProducts(ctx, "", 0)

		assert.NoError(t, err)
		assert.Equal(t, fromDB, products)
		assert.Empty(t, cursor)
		mockProductRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("cursor pages bypass the cache", func(t *testing.T) {
		mockProductRepo := new(mocks.ProductRepository)
		mockCache := new(mocks.ProductCache)
		svc := service.NewCatalogService(nil, mockProductRepo, mockCache, zap.NewNop())

		fromDB := []models.Product{{ID: uuid.New()}}
		mockProductRepo.On("List", ctx, nil, "some-cursor", 20).Return(fromDB, "next", nil).Once()

		products, cursor, err := svc.ListProducts(ctx, "some-cursor", 20)

		assert.NoError(t, err)
		assert.Equal(t, fromDB, products)
		assert.Equal(t, "next", cursor)
		mockCache.AssertNotCalled(t, "GetFirstPage")
		mockCache.AssertNotCalled(t, "SetFirstPage")
		mockProductRepo.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("missing product returns not found", func(t *testing.T) {
		mockProductRepo := new(mocks.ProductRepository)
		mockCache := new(mocks.ProductCache)
		svc := service.NewCatalogService(nil, mockProductRepo, mockCache, zap.NewNop())

		id := uuid.New()
		mockProductRepo.On("GetByID", ctx, nil, id).Return(nil, models.ErrNotFound).Once()

		product, err := svc.GetProduct(ctx, id)

		assert.Nil(t, product)
		assert.ErrorIs(t, err, models.ErrNotFound)
		mockProductRepo.AssertExpectations(t)
	})
}
