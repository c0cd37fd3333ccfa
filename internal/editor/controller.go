package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront-server/internal/editor/snapshot"
	"storefront-server/internal/models"
)

// State is the draft lifecycle state.
type State int

const (
	// StateNew means no remote id has been assigned yet.
	StateNew State = iota
	// StateBound means a remote record exists and all writes go to its id.
	StateBound
	// StatePublished is terminal; the id is invalidated.
	StatePublished
	// StateDiscarded is terminal; the id is invalidated.
	StateDiscarded
)

// SaveStatus is the save-status signal exposed to the editing UI.
type SaveStatus string

const (
	StatusIdle   SaveStatus = "idle"
	StatusSaving SaveStatus = "saving"
	StatusSaved  SaveStatus = "saved"
	StatusError  SaveStatus = "error"
)

// Conflict carries both candidate documents when reconciliation cannot pick a
// side automatically. It stays pending until ResolveConflict is called.
type Conflict struct {
	Local  models.DraftDocument
	Remote models.DraftDocument
}

// ConflictChoice is the user's whole-document pick; there is no field-level
// merge.
type ConflictChoice int

const (
	KeepLocal ConflictChoice = iota
	KeepRemote
)

// Config assembles a Controller for one editing session.
type Config struct {
	Local     *snapshot.Store
	Remote    RemoteStore
	Publisher RemotePublisher
	// OwnerID is the current principal, empty when anonymous.
	OwnerID string
	// QuietPeriod overrides the debounce window; zero means the default.
	QuietPeriod time.Duration
	// Clock defaults to the system clock.
	Clock  Clock
	Logger *zap.Logger
	// OnStatusChange is invoked on every save-status transition. It must not
	// call back into the controller.
	OnStatusChange func(status SaveStatus, message string)
}

// Controller owns the active draft id and drives create, autosave, conflict
// resolution, publish and discard. It is the only component that mutates the
// active id; one controller exists per editing session.
type Controller struct {
	local     *snapshot.Store
	remote    RemoteStore
	publisher RemotePublisher
	scheduler *Scheduler
	ownerID   string
	logger    *zap.Logger
	onStatus  func(status SaveStatus, message string)

	mu            sync.Mutex
	state         State
	activeDraftID string
	doc           models.DraftDocument
	conflict      *Conflict
	// remoteSavedAt is the highest savedAt confirmed by the remote store.
	// Responses older than it are stale and ignored.
	remoteSavedAt int64
	// unsavedRemote means the current document has changes the remote store
	// has not confirmed yet.
	unsavedRemote bool
	// remoteGone is set when the bound id stopped existing server-side; no
	// further writes are attempted against it.
	remoteGone bool
	// creating blocks a second concurrent create while the first is in
	// flight.
	creating  bool
	status    SaveStatus
	statusMsg string
}

func NewController(cfg Config) *Controller {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	c := &Controller{
		local:     cfg.Local,
		remote:    cfg.Remote,
		publisher: cfg.Publisher,
		ownerID:   cfg.OwnerID,
		logger:    cfg.Logger.Named("DraftController"),
		onStatus:  cfg.OnStatusChange,
		state:     StateNew,
		doc:       models.NewDraftDocument(cfg.OwnerID),
		status:    StatusIdle,
	}
	c.scheduler = NewScheduler(cfg.Local, c.persistRemote, clock, cfg.QuietPeriod)
	return c
}

// Load reconciles the local snapshot against the remote record (fetched when
// draftID is non-empty) and installs the resulting document. A conflict leaves
// the controller waiting on ResolveConflict; every other outcome is applied
// directly.
func (c *Controller) Load(ctx context.Context, draftID string) error {
	var remoteDoc *models.DraftDocument
	var loadErr error

	if draftID != "" {
		fetched, err := c.remote.Fetch(ctx, draftID)
		switch {
		case err == nil:
			remoteDoc = fetched
			c.mu.Lock()
			c.activeDraftID = draftID
			c.state = StateBound
			c.remoteSavedAt = fetched.SavedAt
			c.mu.Unlock()
		case errors.Is(err, ErrDraftNotFound):
			// The referenced draft was published or deleted elsewhere. The
			// session starts unbound; the local snapshot (if any) is still
			// usable.
			c.logger.Info("Referenced draft no longer exists", zap.String("draftId", draftID))
			c.setStatus(StatusError, "draft no longer available")
		default:
			// The record presumably still exists; the id stays authoritative
			// so the next flush retries it as an update instead of minting a
			// second remote draft.
			c.mu.Lock()
			c.activeDraftID = draftID
			c.state = StateBound
			c.mu.Unlock()
			c.logger.Warn("Remote fetch failed, loading local-only", zap.String("draftId", draftID), zap.Error(err))
			c.setStatus(StatusError, "could not reach the draft store")
			loadErr = err
		}
	}

	decision := Reconcile(c.local.Load(), remoteDoc, c.ownerID)

	c.mu.Lock()
	if decision.Outcome == OutcomeConflict {
		c.conflict = &Conflict{Local: *decision.Local, Remote: *decision.Remote}
	} else {
		c.doc = decision.Doc
		c.unsavedRemote = decision.UnsavedRemote
	}
	c.mu.Unlock()

	return loadErr
}

// Document returns a copy of the currently reconciled document. The copy is
// the caller's to mutate; the controller's own state stays private to the
// flush goroutine.
func (c *Controller) Document() models.DraftDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Conflict returns a copy of the pending conflict, or nil.
func (c *Controller) Conflict() *Conflict {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conflict == nil {
		return nil
	}
	return &Conflict{
		Local:  c.conflict.Local.Clone(),
		Remote: c.conflict.Remote.Clone(),
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveDraftID returns the bound remote id, empty until the first successful
// remote save.
func (c *Controller) ActiveDraftID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeDraftID
}

// Status returns the save-status signal and its message.
func (c *Controller) Status() (SaveStatus, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, c.statusMsg
}

// RemoteSavedAt returns the last remote savedAt the controller has applied.
func (c *Controller) RemoteSavedAt() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remoteSavedAt
}

// Edit applies one field mutation: the document is saved locally at once and
// a remote write is scheduled after the quiet period. Returns the document as
// stamped by the local save.
func (c *Controller) Edit(doc models.DraftDocument) (models.DraftDocument, error) {
	c.mu.Lock()
	if c.state == StatePublished || c.state == StateDiscarded {
		c.mu.Unlock()
		return doc, ErrDraftClosed
	}
	if c.conflict != nil {
		c.mu.Unlock()
		return doc, ErrConflictUnresolved
	}
	// Detach from the caller's maps and slices before the document is shared
	// with the flush goroutine.
	doc = doc.Clone()
	doc.OwnerID = c.ownerID
	stamped := c.scheduler.OnEdit(doc)
	c.doc = stamped
	c.unsavedRemote = true
	c.mu.Unlock()

	c.setStatus(StatusSaving, "")
	return stamped.Clone(), nil
}

// FlushNow persists any pending edit to the remote store immediately,
// bypassing the quiet period. Used on explicit save and before navigation.
func (c *Controller) FlushNow() {
	c.scheduler.FlushNow()
}

// HasUnsavedChanges reports whether local changes have not been confirmed
// remotely. Navigation hooks consult this before letting an unload proceed.
func (c *Controller) HasUnsavedChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsavedRemote
}

// ResolveConflict applies the user's pick. Choosing local keeps the snapshot
// and forces a remote save on the next flush; choosing remote installs the
// remote copy and clears the stale snapshot.
func (c *Controller) ResolveConflict(choice ConflictChoice) (models.DraftDocument, error) {
	c.mu.Lock()
	if c.conflict == nil {
		doc := c.doc.Clone()
		c.mu.Unlock()
		return doc, nil
	}
	conflict := *c.conflict
	c.conflict = nil

	if choice == KeepRemote {
		c.doc = conflict.Remote
		c.remoteSavedAt = conflict.Remote.SavedAt
		c.unsavedRemote = false
		c.mu.Unlock()
		c.local.Clear()
		c.setStatus(StatusSaved, "")
		return conflict.Remote.Clone(), nil
	}

	c.doc = conflict.Local
	c.unsavedRemote = true
	c.mu.Unlock()
	c.setStatus(StatusIdle, "")
	return conflict.Local.Clone(), nil
}

// Publish converts the bound draft into a permanent catalog product. On
// success the remote record and the local snapshot are gone and the draft id
// is invalidated; on failure the draft stays Bound with nothing deleted.
func (c *Controller) Publish(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state == StatePublished || c.state == StateDiscarded {
		c.mu.Unlock()
		return "", ErrDraftClosed
	}
	if c.conflict != nil {
		c.mu.Unlock()
		return "", ErrConflictUnresolved
	}
	needsFlush := c.state == StateNew || c.unsavedRemote
	doc := c.doc
	c.mu.Unlock()

	// The remote record must carry the final fields before conversion.
	if needsFlush {
		if c.scheduler.HasPending() {
			c.scheduler.FlushNow()
		} else {
			c.persistRemote(doc)
		}
	}

	c.mu.Lock()
	if c.state != StateBound {
		c.mu.Unlock()
		return "", fmt.Errorf("draft was never saved remotely: %w", ErrRemoteUnavailable)
	}
	if c.remoteGone {
		c.mu.Unlock()
		return "", ErrDraftNotFound
	}
	draftID := c.activeDraftID
	c.mu.Unlock()

	productID, err := c.publisher.Publish(ctx, draftID)
	if err != nil {
		c.logger.Error("Publish failed", zap.String("draftId", draftID), zap.Error(err))
		c.setStatus(StatusError, "failed to publish draft")
		return "", err
	}

	c.scheduler.CancelPending()
	// The publish already consumed the draft server-side; Delete is an
	// idempotent cleanup in case the publisher and the draft store are
	// separate collaborators.
	if err := c.remote.Delete(ctx, draftID); err != nil {
		c.logger.Warn("Failed to delete published draft record", zap.String("draftId", draftID), zap.Error(err))
	}
	c.local.Clear()

	c.mu.Lock()
	c.state = StatePublished
	c.activeDraftID = ""
	c.unsavedRemote = false
	c.mu.Unlock()

	c.setStatus(StatusIdle, "")
	c.logger.Info("Draft published", zap.String("draftId", draftID), zap.String("productId", productID))
	return productID, nil
}

// Discard destroys the draft on both channels. Destructive and user-confirmed;
// there is no undo.
func (c *Controller) Discard(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StatePublished || c.state == StateDiscarded {
		c.mu.Unlock()
		return ErrDraftClosed
	}
	draftID := c.activeDraftID
	bound := c.state == StateBound
	gone := c.remoteGone
	c.mu.Unlock()

	c.scheduler.CancelPending()

	if bound && !gone {
		if err := c.remote.Delete(ctx, draftID); err != nil {
			c.logger.Error("Failed to delete remote draft on discard", zap.String("draftId", draftID), zap.Error(err))
			c.setStatus(StatusError, "failed to discard draft")
			return err
		}
	}
	c.local.Clear()

	c.mu.Lock()
	c.state = StateDiscarded
	c.activeDraftID = ""
	c.conflict = nil
	c.unsavedRemote = false
	c.doc = models.NewDraftDocument(c.ownerID)
	c.mu.Unlock()

	c.setStatus(StatusIdle, "")
	return nil
}

// persistRemote is the scheduler's flush target: create on the first save,
// update afterwards. Runs without a request context, so remote calls carry
// their own timeout.
func (c *Controller) persistRemote(doc models.DraftDocument) {
	c.mu.Lock()
	if c.state == StatePublished || c.state == StateDiscarded || c.remoteGone {
		c.mu.Unlock()
		return
	}
	create := c.state == StateNew
	if create && c.creating {
		// A create is already in flight; its id will be bound first and the
		// next flush becomes an update.
		c.mu.Unlock()
		return
	}
	if create {
		c.creating = true
	}
	draftID := c.activeDraftID
	c.mu.Unlock()

	c.setStatus(StatusSaving, "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if create {
		id, saved, err := c.remote.Create(ctx, doc)
		c.mu.Lock()
		c.creating = false
		if err != nil {
			c.mu.Unlock()
			c.logger.Warn("Remote create failed, draft stays local", zap.Error(err))
			c.setStatus(StatusError, "could not save draft remotely")
			return
		}
		if c.state == StateNew {
			c.activeDraftID = id
			c.state = StateBound
		}
		savedNow := c.applySavedLocked(saved)
		c.mu.Unlock()
		if savedNow {
			c.setStatus(StatusSaved, "")
		}
		return
	}

	saved, err := c.remote.Update(ctx, draftID, doc)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			// The draft died server-side. Stop writing to the dead id and
			// tell the user instead of silently retrying forever.
			c.mu.Lock()
			c.remoteGone = true
			c.mu.Unlock()
			c.logger.Warn("Bound draft no longer exists remotely", zap.String("draftId", draftID))
			c.setStatus(StatusError, "draft no longer available")
			return
		}
		c.logger.Warn("Remote update failed, draft stays local", zap.String("draftId", draftID), zap.Error(err))
		c.setStatus(StatusError, "could not save draft remotely")
		return
	}

	c.mu.Lock()
	savedNow := c.applySavedLocked(saved)
	c.mu.Unlock()
	if savedNow {
		c.setStatus(StatusSaved, "")
	}
}

// applySavedLocked applies one remote save confirmation and reports whether
// the session is now fully saved. Responses are not ordered by initiation
// time, so anything older than the last-applied savedAt is stale and dropped.
// The in-memory document is never replaced by a confirmation: the user may
// already have typed past it.
func (c *Controller) applySavedLocked(saved models.DraftDocument) bool {
	if saved.SavedAt < c.remoteSavedAt {
		return false
	}
	c.remoteSavedAt = saved.SavedAt

	if c.scheduler.HasPending() {
		// Newer edits are already waiting for their own write.
		return false
	}
	c.unsavedRemote = false
	return true
}

func (c *Controller) setStatus(status SaveStatus, message string) {
	c.mu.Lock()
	changed := c.status != status || c.statusMsg != message
	c.status = status
	c.statusMsg = message
	callback := c.onStatus
	c.mu.Unlock()

	if changed && callback != nil {
		callback(status, message)
	}
}
