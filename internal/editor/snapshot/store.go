package snapshot

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"storefront-server/internal/models"
)

// draftKey is the single well-known key holding the snapshot. One snapshot
// exists per device at a time; every save overwrites it.
const draftKey = "storefront:product_draft"

// Store persists exactly one draft document in the device-local KV. Write
// failures never reach the caller: the in-memory document stays the source of
// truth for the session, so a failed save is logged and dropped.
type Store struct {
	kv     KV
	now    func() time.Time
	logger *zap.Logger
}

// NewStore creates a snapshot store. now may be nil, defaulting to time.Now.
func NewStore(kv KV, now func() time.Time, logger *zap.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		kv:     kv,
		now:    now,
		logger: logger.Named("SnapshotStore"),
	}
}

// Save stamps SavedAt and writes the document, returning the stamped copy.
func (s *Store) Save(doc models.DraftDocument) models.DraftDocument {
	doc.SavedAt = s.now().UnixMilli()

	data, err := json.Marshal(doc)
	if err != nil {
		s.logger.Warn("Failed to serialize draft snapshot", zap.Error(err))
		return doc
	}
	if err := s.kv.Set(draftKey, string(data)); err != nil {
		s.logger.Warn("Failed to write draft snapshot", zap.Error(err))
	}
	return doc
}

// Load returns the stored document, or nil when absent. A corrupt value is
// treated as absent, not as an error.
func (s *Store) Load() *models.DraftDocument {
	data, err := s.kv.Get(draftKey)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn("Failed to read draft snapshot", zap.Error(err))
		}
		return nil
	}

	var doc models.DraftDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		s.logger.Warn("Corrupt draft snapshot, treating as absent", zap.Error(err))
		return nil
	}
	return &doc
}

// Clear removes the snapshot. Subsequent loads return nil until the next save.
func (s *Store) Clear() {
	if err := s.kv.Remove(draftKey); err != nil {
		s.logger.Warn("Failed to clear draft snapshot", zap.Error(err))
	}
}
