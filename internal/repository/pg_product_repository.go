package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-server/internal/models"
	"storefront-server/internal/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ ProductRepository = (*pgProductRepository)(nil)

type pgProductRepository struct {
	logger *zap.Logger
}

// NewPgProductRepository creates the PostgreSQL-backed catalog repository.
func NewPgProductRepository(logger *zap.Logger) ProductRepository {
	return &pgProductRepository{
		logger: logger.Named("PgProductRepo"),
	}
}

func (r *pgProductRepository) Create(ctx context.Context, querier DBTX, product *models.Product) error {
	query := `
        INSERT INTO products
            (id, draft_id, owner_id, name, description, price_cents, category, images, specs, active, published_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	logFields := []zap.Field{zap.String("productID", product.ID.String()), zap.String("draftID", product.DraftID.String())}
	r.logger.Debug("Creating product", logFields...)

	_, err := querier.Exec(ctx, query,
		product.ID,
		product.DraftID,
		product.OwnerID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Category,
		product.Images,
		product.Specs,
		product.Active,
		product.PublishedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.logger.Info("Product created", logFields...)
	return nil
}

func (r *pgProductRepository) GetByID(ctx context.Context, querier DBTX, id uuid.UUID) (*models.Product, error) {
	query := `
        SELECT id, draft_id, owner_id, name, description, price_cents, category, images, specs, active, published_at
        FROM products
        WHERE id = $1 AND active = TRUE
    `
	product := &models.Product{}
	err := pgxscan.Get(ctx, querier, product, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get product", zap.String("productID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return product, nil
}

func (r *pgProductRepository) List(ctx context.Context, querier DBTX, cursor string, limit int) ([]models.Product, string, error) {
	cursorTime, cursorID, err := utils.DecodeCursor(cursor)
	if err != nil {
		return nil, "", models.ErrInvalidCursor
	}

	query := `
        SELECT id, draft_id, owner_id, name, description, price_cents, category, images, specs, active, published_at
        FROM products
        WHERE active = TRUE
    `
	args := []any{}
	if cursorID != uuid.Nil {
		query += ` AND (published_at, id) < ($1, $2)`
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY published_at DESC, id DESC LIMIT %d`, limit+1)

	var products []models.Product
	if err := pgxscan.Select(ctx, querier, &products, query, args...); err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, "", fmt.Errorf("failed to list products: %w", err)
	}

	nextCursor := ""
	if len(products) > limit {
		products = products[:limit]
		last := products[len(products)-1]
		nextCursor = utils.EncodeCursor(last.PublishedAt, last.ID)
	}

	return products, nextCursor, nil
}
