package models

// DraftDocument is the editable product form as the seller sees it. The same
// document flows through the editor, the local snapshot store and the remote
// draft store, serialized as JSON in all three places.
//
// SavedAt is a millisecond Unix timestamp stamped on every save; it drives the
// last-write-wins comparison when a local snapshot and a remote copy disagree.
// OwnerID is empty while the seller is anonymous.
type DraftDocument struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PriceCents  int64             `json:"price_cents"`
	Category    string            `json:"category"`
	Images      []string          `json:"images"`
	Specs       map[string]string `json:"specs"`
	Active      bool              `json:"active"`
	SavedAt     int64             `json:"saved_at"`
	OwnerID     string            `json:"owner_id,omitempty"`
}

// Clone returns a copy whose Images and Specs do not alias the receiver's.
// The document crosses goroutines between the editing surface and the
// persistence path, so shared map and slice headers are never handed out.
func (d DraftDocument) Clone() DraftDocument {
	out := d
	if d.Images != nil {
		out.Images = append([]string(nil), d.Images...)
	}
	if d.Specs != nil {
		out.Specs = make(map[string]string, len(d.Specs))
		for k, v := range d.Specs {
			out.Specs[k] = v
		}
	}
	return out
}

// NewDraftDocument returns an empty document ready for editing.
func NewDraftDocument(ownerID string) DraftDocument {
	return DraftDocument{
		Images:  []string{},
		Specs:   map[string]string{},
		OwnerID: ownerID,
	}
}
