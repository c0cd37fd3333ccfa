package messaging

// ProductPublishedEvent is emitted after a draft has been converted into a
// permanent catalog record. Consumed by downstream services (search indexing,
// notifications, admin feeds).
type ProductPublishedEvent struct {
	ProductID  string `json:"product_id"`
	DraftID    string `json:"draft_id"`
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Category   string `json:"category"`
}
