package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-server/internal/models"
	"storefront-server/internal/repository"
)

const (
	defaultDraftPageSize = 20
	maxDraftPageSize     = 100
)

// DraftService manages product drafts on behalf of their owners. Ownership is
// enforced at the repository level: a draft belonging to someone else is
// indistinguishable from a missing one.
type DraftService interface {
	CreateDraft(ctx context.Context, ownerID uuid.UUID, doc models.DraftDocument) (*models.ProductDraft, error)
	GetDraft(ctx context.Context, ownerID, draftID uuid.UUID) (*models.ProductDraft, error)
	UpdateDraft(ctx context.Context, ownerID, draftID uuid.UUID, doc models.DraftDocument) (*models.ProductDraft, error)
	DeleteDraft(ctx context.Context, ownerID, draftID uuid.UUID) error
	ListDrafts(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.ProductDraft, string, error)
}

type draftServiceImpl struct {
	db        repository.DBTX
	draftRepo repository.ProductDraftRepository
	logger    *zap.Logger
}

var _ DraftService = (*draftServiceImpl)(nil)

func NewDraftService(db repository.DBTX, draftRepo repository.ProductDraftRepository, logger *zap.Logger) DraftService {
	return &draftServiceImpl{
		db:        db,
		draftRepo: draftRepo,
		logger:    logger.Named("DraftService"),
	}
}

func (s *draftServiceImpl) CreateDraft(ctx context.Context, ownerID uuid.UUID, doc models.DraftDocument) (*models.ProductDraft, error) {
	now := time.Now()
	doc.OwnerID = ownerID.String()
	doc.SavedAt = now.UnixMilli()
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if doc.Specs == nil {
		doc.Specs = map[string]string{}
	}

	draft := &models.ProductDraft{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Doc:       doc,
		SavedAt:   doc.SavedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.draftRepo.Create(ctx, s.db, draft); err != nil {
		s.logger.Error("failed to create draft", zap.Error(err), zap.String("ownerId", ownerID.String()))
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	s.logger.Info("draft created", zap.String("draftId", draft.ID.String()), zap.String("ownerId", ownerID.String()))
	return draft, nil
}

func (s *draftServiceImpl) GetDraft(ctx context.Context, ownerID, draftID uuid.UUID) (*models.ProductDraft, error) {
	return s.draftRepo.GetByID(ctx, s.db, draftID, ownerID)
}

func (s *draftServiceImpl) UpdateDraft(ctx context.Context, ownerID, draftID uuid.UUID, doc models.DraftDocument) (*models.ProductDraft, error) {
	draft, err := s.draftRepo.GetByID(ctx, s.db, draftID, ownerID)
	if err != nil {
		return nil, err
	}

	doc.OwnerID = ownerID.String()
	doc.SavedAt = time.Now().UnixMilli()
	draft.Doc = doc
	draft.SavedAt = doc.SavedAt
	draft.UpdatedAt = time.Now()

	if err := s.draftRepo.Update(ctx, s.db, draft); err != nil {
		s.logger.Error("failed to update draft", zap.Error(err), zap.String("draftId", draftID.String()))
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return draft, nil
}

// DeleteDraft is idempotent: deleting a draft that no longer exists succeeds.
func (s *draftServiceImpl) DeleteDraft(ctx context.Context, ownerID, draftID uuid.UUID) error {
	if err := s.draftRepo.Delete(ctx, s.db, draftID, ownerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		s.logger.Error("failed to delete draft", zap.Error(err), zap.String("draftId", draftID.String()))
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	s.logger.Info("draft deleted", zap.String("draftId", draftID.String()))
	return nil
}

func (s *draftServiceImpl) ListDrafts(ctx context.Context, ownerID uuid.UUID, cursor string, limit int) ([]models.ProductDraft, string, error) {
	SanitizeLimit(&limit, defaultDraftPageSize, maxDraftPageSize)
	drafts, nextCursor, err := s.draftRepo.ListByOwner(ctx, s.db, ownerID, cursor, limit)
	if err != nil {
		s.logger.Error("failed to list drafts", zap.Error(err), zap.String("ownerId", ownerID.String()))
		return nil, "", err
	}
	return drafts, nextCursor, nil
}
