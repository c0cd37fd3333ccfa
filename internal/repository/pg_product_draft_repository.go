package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-server/internal/models"
	"storefront-server/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ ProductDraftRepository = (*pgProductDraftRepository)(nil)

type pgProductDraftRepository struct {
	logger *zap.Logger
}

// NewPgProductDraftRepository creates the PostgreSQL-backed draft repository.
func NewPgProductDraftRepository(logger *zap.Logger) ProductDraftRepository {
	return &pgProductDraftRepository{
		logger: logger.Named("PgProductDraftRepo"),
	}
}

func (r *pgProductDraftRepository) Create(ctx context.Context, querier DBTX, draft *models.ProductDraft) error {
	query := `
        INSERT INTO product_drafts
            (id, owner_id, doc, saved_at, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6)
    `
	logFields := []zap.Field{zap.String("draftID", draft.ID.String()), zap.String("ownerID", draft.OwnerID.String())}
	r.logger.Debug("Creating product draft", logFields...)

	_, err := querier.Exec(ctx, query,
		draft.ID,
		draft.OwnerID,
		draft.Doc,
		draft.SavedAt,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product draft", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create product draft: %w", err)
	}
	r.logger.Info("Product draft created", logFields...)
	return nil
}

func (r *pgProductDraftRepository) GetByID(ctx context.Context, querier DBTX, id, ownerID uuid.UUID) (*models.ProductDraft, error) {
	query := `
        SELECT id, owner_id, doc, saved_at, created_at, updated_at
        FROM product_drafts
        WHERE id = $1 AND owner_id = $2
    `
	draft := &models.ProductDraft{}
	logFields := []zap.Field{zap.String("draftID", id.String()), zap.String("ownerID", ownerID.String())}
	r.logger.Debug("Getting product draft by ID", logFields...)

	err := querier.QueryRow(ctx, query, id, ownerID).Scan(
		&draft.ID, &draft.OwnerID, &draft.Doc, &draft.SavedAt, &draft.CreatedAt, &draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Product draft not found for owner", logFields...)
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get product draft", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get product draft %s: %w", id, err)
	}
	return draft, nil
}

func (r *pgProductDraftRepository) Update(ctx context.Context, querier DBTX, draft *models.ProductDraft) error {
	query := `
        UPDATE product_drafts
        SET doc = $3, saved_at = $4, updated_at = $5
        WHERE id = $1 AND owner_id = $2
    `
	logFields := []zap.Field{zap.String("draftID", draft.ID.String()), zap.String("ownerID", draft.OwnerID.String())}
	r.logger.Debug("Updating product draft", logFields...)

	result, err := querier.Exec(ctx, query,
		draft.ID,
		draft.OwnerID,
		draft.Doc,
		draft.SavedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update product draft", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update product draft %s: %w", draft.ID, err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Warn("Product draft not found for update", logFields...)
		return models.ErrNotFound
	}
	return nil
}

func (r *pgProductDraftRepository) Delete(ctx context.Context, querier DBTX, id, ownerID uuid.UUID) error {
	query := `
        DELETE FROM product_drafts
        WHERE id = $1 AND owner_id = $2
    `
	logFields := []zap.Field{zap.String("draftID", id.String()), zap.String("ownerID", ownerID.String())}
	r.logger.Debug("Deleting product draft", logFields...)

	result, err := querier.Exec(ctx, query, id, ownerID)
	if err != nil {
		r.logger.Error("Failed to delete product draft", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete product draft %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		r.logger.Debug("Product draft not found for delete", logFields...)
		return models.ErrNotFound
	}
	r.logger.Info("Product draft deleted", logFields...)
	return nil
}

func (r *pgProductDraftRepository) ListByOwner(ctx context.Context, querier DBTX, ownerID uuid.UUID, cursor string, limit int) ([]models.ProductDraft, string, error) {
	logFields := []zap.Field{zap.String("ownerID", ownerID.String()), zap.Int("limit", limit)}
	r.logger.Debug("Listing product drafts", logFields...)

	cursorTime, cursorID, err := utils.DecodeCursor(cursor)
	if err != nil {
		r.logger.Warn("Invalid cursor for draft listing", append(logFields, zap.Error(err))...)
		return nil, "", models.ErrInvalidCursor
	}

	query := `
        SELECT id, owner_id, doc, saved_at, created_at, updated_at
        FROM product_drafts
        WHERE owner_id = $1
    `
	args := []any{ownerID}
	if cursorID != uuid.Nil {
		query += ` AND (updated_at, id) < ($2, $3)`
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY updated_at DESC, id DESC LIMIT %d`, limit+1)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list product drafts", append(logFields, zap.Error(err))...)
		return nil, "", fmt.Errorf("failed to list product drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.ProductDraft
	for rows.Next() {
		var draft models.ProductDraft
		if err := rows.Scan(&draft.ID, &draft.OwnerID, &draft.Doc, &draft.SavedAt, &draft.CreatedAt, &draft.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("failed to scan product draft row: %w", err)
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed reading product draft rows: %w", err)
	}

	nextCursor := ""
	if len(drafts) > limit {
		drafts = drafts[:limit]
		last := drafts[len(drafts)-1]
		nextCursor = utils.EncodeCursor(last.UpdatedAt, last.ID)
	}

	r.logger.Debug("Product drafts listed", append(logFields, zap.Int("count", len(drafts)))...)
	return drafts, nextCursor, nil
}
