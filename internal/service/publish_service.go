package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront-server/internal/messaging"
	"storefront-server/internal/models"
	"storefront-server/internal/repository"
)

// PublishService turns a draft into a permanent catalog product.
type PublishService interface {
	// Publish atomically copies the draft into the catalog and removes the
	// draft. Returns models.ErrNotFound when the draft is gone, which covers
	// the already-published case: the second publish of the same draft fails
	// cleanly without creating a duplicate product.
	Publish(ctx context.Context, ownerID, draftID uuid.UUID) (*models.Product, error)
}

type publishServiceImpl struct {
	pool        *pgxpool.Pool
	draftRepo   repository.ProductDraftRepository
	productRepo repository.ProductRepository
	cache       repository.ProductCache
	events      messaging.EventPublisher
	logger      *zap.Logger
}

var _ PublishService = (*publishServiceImpl)(nil)

func NewPublishService(
	pool *pgxpool.Pool,
	draftRepo repository.ProductDraftRepository,
	productRepo repository.ProductRepository,
	cache repository.ProductCache,
	events messaging.EventPublisher,
	logger *zap.Logger,
) PublishService {
	return &publishServiceImpl{
		pool:        pool,
		draftRepo:   draftRepo,
		productRepo: productRepo,
		cache:       cache,
		events:      events,
		logger:      logger.Named("PublishService"),
	}
}

func (s *publishServiceImpl) Publish(ctx context.Context, ownerID, draftID uuid.UUID) (*models.Product, error) {
	logFields := []zap.Field{zap.String("draftId", draftID.String()), zap.String("ownerId", ownerID.String())}

	var product *models.Product
	err := WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		draft, err := s.draftRepo.GetByID(ctx, tx, draftID, ownerID)
		if err != nil {
			return err
		}

		product = models.ProductFromDraft(draft, time.Now())
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return err
		}

		// The draft row is the publish lock: deleting it inside the same
		// transaction makes a concurrent publish of the same draft fail on
		// GetByID instead of inserting a second product.
		if err := s.draftRepo.Delete(ctx, tx, draftID, ownerID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to publish draft", append(logFields, zap.Error(err))...)
			return nil, fmt.Errorf("failed to publish draft: %w", err)
		}
		return nil, err
	}

	// The product is already committed; a lost event is logged, not rolled back.
	event := messaging.ProductPublishedEvent{
		ProductID:  product.ID.String(),
		DraftID:    draftID.String(),
		OwnerID:    ownerID.String(),
		Name:       product.Name,
		PriceCents: product.PriceCents,
		Category:   product.Category,
	}
	if err := s.events.PublishProductPublished(ctx, event); err != nil {
		s.logger.Error("failed to publish product event", append(logFields, zap.Error(err))...)
	}

	s.cache.Invalidate(ctx)

	s.logger.Info("draft published", append(logFields, zap.String("productId", product.ID.String()))...)
	return product, nil
}
