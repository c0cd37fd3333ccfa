package editor

import (
	"sync"
	"time"

	"storefront-server/internal/models"

	"storefront-server/internal/editor/snapshot"
)

// DefaultQuietPeriod is the debounce window between the last edit and the
// remote write it triggers.
const DefaultQuietPeriod = 2 * time.Second

// Scheduler coalesces rapid edits: every edit lands in the local snapshot
// immediately, while the remote write fires only after a quiet period with no
// further edits. Only the latest document state is ever sent.
type Scheduler struct {
	mu      sync.Mutex
	local   *snapshot.Store
	flush   func(doc models.DraftDocument)
	clock   Clock
	quiet   time.Duration
	timer   Timer
	latest  models.DraftDocument
	pending bool
}

// NewScheduler creates a scheduler. flush is invoked with the latest document
// when the quiet period elapses or FlushNow is called; it is never invoked
// while the scheduler's lock is held.
func NewScheduler(local *snapshot.Store, flush func(doc models.DraftDocument), clock Clock, quiet time.Duration) *Scheduler {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Scheduler{
		local: local,
		flush: flush,
		clock: clock,
		quiet: quiet,
	}
}

// OnEdit saves the document locally, restarts the quiet-period timer and
// returns the document as stamped by the local save.
func (s *Scheduler) OnEdit(doc models.DraftDocument) models.DraftDocument {
	stamped := s.local.Save(doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = stamped
	s.pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = s.clock.AfterFunc(s.quiet, s.fire)
	return stamped
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	doc := s.latest
	s.pending = false
	s.timer = nil
	s.mu.Unlock()

	s.flush(doc)
}

// FlushNow cancels the timer and persists the pending document immediately.
// Used on explicit save and before navigation away. No-op when nothing is
// pending.
func (s *Scheduler) FlushNow() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	doc := s.latest
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.flush(doc)
}

// CancelPending drops any scheduled remote write. Used on discard.
func (s *Scheduler) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// HasPending reports whether an edit is still waiting for its remote write.
func (s *Scheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
