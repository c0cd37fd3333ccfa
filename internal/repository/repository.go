package repository

import (
	"context"

	"storefront-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories can run
// inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProductDraftRepository is the server-side store for in-progress drafts.
type ProductDraftRepository interface {
	Create(ctx context.Context, querier DBTX, draft *models.ProductDraft) error
	// GetByID returns the draft owned by ownerID, or models.ErrNotFound.
	GetByID(ctx context.Context, querier DBTX, id, ownerID uuid.UUID) (*models.ProductDraft, error)
	// Update overwrites the stored document; models.ErrNotFound when the draft
	// is gone (already published or deleted).
	Update(ctx context.Context, querier DBTX, draft *models.ProductDraft) error
	// Delete removes the draft; models.ErrNotFound when no row matched.
	Delete(ctx context.Context, querier DBTX, id, ownerID uuid.UUID) error
	// ListByOwner returns up to limit drafts ordered by recency, plus the
	// cursor for the next page ("" when exhausted).
	ListByOwner(ctx context.Context, querier DBTX, ownerID uuid.UUID, cursor string, limit int) ([]models.ProductDraft, string, error)
}

// ProductRepository is the permanent catalog store.
type ProductRepository interface {
	Create(ctx context.Context, querier DBTX, product *models.Product) error
	GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Product, error)
	// List returns active products ordered by publish time, newest first.
	List(ctx context.Context, querier DBTX, cursor string, limit int) ([]models.Product, string, error)
}

// ProductCache is a read-through cache in front of ProductRepository.List for
// the hot first page of the catalog.
type ProductCache interface {
	GetFirstPage(ctx context.Context) ([]models.Product, bool)
	SetFirstPage(ctx context.Context, products []models.Product)
	Invalidate(ctx context.Context)
}
