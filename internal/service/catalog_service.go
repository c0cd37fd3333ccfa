package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-server/internal/models"
	"storefront-server/internal/repository"
	"storefront-server/internal/utils"
)

const (
	defaultCatalogPageSize = 20
	maxCatalogPageSize     = 100
)

// CatalogService serves the public, published side of the store.
type CatalogService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// ListProducts returns a page of active products, newest first. The first
	// page (empty cursor, default limit) is served through the cache.
	ListProducts(ctx context.Context, cursor string, limit int) ([]models.Product, string, error)
}

type catalogServiceImpl struct {
	db          repository.DBTX
	productRepo repository.ProductRepository
	cache       repository.ProductCache
	logger      *zap.Logger
}

var _ CatalogService = (*catalogServiceImpl)(nil)

func NewCatalogService(db repository.DBTX, productRepo repository.ProductRepository, cache repository.ProductCache, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		db:          db,
		productRepo: productRepo,
		cache:       cache,
		logger:      logger.Named("CatalogService"),
	}
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, s.db, id)
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, cursor string, limit int) ([]models.Product, string, error) {
	SanitizeLimit(&limit, defaultCatalogPageSize, maxCatalogPageSize)

	cacheable := cursor == "" && limit == defaultCatalogPageSize
	if cacheable {
		if products, ok := s.cache.GetFirstPage(ctx); ok {
			nextCursor := ""
			if len(products) == limit {
				last := products[len(products)-1]
				nextCursor = cursorFor(last)
			}
			return products, nextCursor, nil
		}
	}

	products, nextCursor, err := s.productRepo.List(ctx, s.db, cursor, limit)
	if err != nil {
		s.logger.Error("failed to list products", zap.Error(err))
		return nil, "", err
	}

	if cacheable && len(products) > 0 {
		s.cache.SetFirstPage(ctx, products)
	}
	return products, nextCursor, nil
}

func cursorFor(p models.Product) string {
	return utils.EncodeCursor(p.PublishedAt, p.ID)
}
