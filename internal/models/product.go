package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductDraft is the server-side record of an in-progress product form. The
// document itself is stored as a jsonb blob; SavedAt is duplicated in its own
// column so conflict checks never need to parse the document.
type ProductDraft struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	OwnerID   uuid.UUID     `db:"owner_id" json:"owner_id"`
	Doc       DraftDocument `db:"doc" json:"doc"`
	SavedAt   int64         `db:"saved_at" json:"saved_at"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// Product is a published catalog entry. Unlike a draft it is flattened into
// columns so the catalog can be queried and filtered directly.
type Product struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	DraftID     uuid.UUID         `db:"draft_id" json:"draft_id"`
	OwnerID     uuid.UUID         `db:"owner_id" json:"owner_id"`
	Name        string            `db:"name" json:"name"`
	Description string            `db:"description" json:"description"`
	PriceCents  int64             `db:"price_cents" json:"price_cents"`
	Category    string            `db:"category" json:"category"`
	Images      []string          `db:"images" json:"images"`
	Specs       map[string]string `db:"specs" json:"specs"`
	Active      bool              `db:"active" json:"active"`
	PublishedAt time.Time         `db:"published_at" json:"published_at"`
}

// ProductFromDraft converts a draft into its permanent catalog form.
func ProductFromDraft(draft *ProductDraft, now time.Time) *Product {
	return &Product{
		ID:          uuid.New(),
		DraftID:     draft.ID,
		OwnerID:     draft.OwnerID,
		Name:        draft.Doc.Name,
		Description: draft.Doc.Description,
		PriceCents:  draft.Doc.PriceCents,
		Category:    draft.Doc.Category,
		Images:      draft.Doc.Images,
		Specs:       draft.Doc.Specs,
		Active:      draft.Doc.Active,
		PublishedAt: now,
	}
}
