package handler

import (
	"time"

	"storefront-server/internal/models"
)

// draftResponse is the wire form of a draft. The document carries its own
// saved_at stamp; clients use it for conflict decisions, so it is returned
// verbatim on every write.
type draftResponse struct {
	ID        string               `json:"id"`
	Doc       models.DraftDocument `json:"doc"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func toDraftResponse(draft *models.ProductDraft) draftResponse {
	return draftResponse{
		ID:        draft.ID.String(),
		Doc:       draft.Doc,
		CreatedAt: draft.CreatedAt,
		UpdatedAt: draft.UpdatedAt,
	}
}

type draftListResponse struct {
	Drafts     []draftResponse `json:"drafts"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

type publishResponse struct {
	ProductID string `json:"product_id"`
}

type productListResponse struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
