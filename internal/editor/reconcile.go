package editor

import "storefront-server/internal/models"

// Outcome is the reconciliation verdict for one editor load.
type Outcome int

const (
	// OutcomeFresh starts with an empty document.
	OutcomeFresh Outcome = iota
	// OutcomeLocal loads the local snapshot; it has changes the remote store
	// has not seen, so the next debounce must write remotely.
	OutcomeLocal
	// OutcomeRemote loads the remote record; nothing is unsaved.
	OutcomeRemote
	// OutcomeConflict surfaces both copies for an explicit user choice. No
	// automatic merge is attempted.
	OutcomeConflict
)

// Decision carries the reconciliation outcome. Doc is the chosen document for
// every outcome except conflict, where Local and Remote hold both candidates.
type Decision struct {
	Outcome       Outcome
	Doc           models.DraftDocument
	Local         *models.DraftDocument
	Remote        *models.DraftDocument
	UnsavedRemote bool
}

// Reconcile decides which copy of the draft the user should see. It performs
// no I/O: both snapshots are supplied by the caller, and the remote fetch (if
// any) happens beforehand. Equal timestamps load the remote copy as the
// canonical tie-break.
func Reconcile(local, remote *models.DraftDocument, ownerID string) Decision {
	// A snapshot owned by a different principal is treated as absent. This
	// keeps one user's in-progress edits from leaking into another user's
	// session on a shared device. The mismatch is silent.
	if local != nil && !ownedBy(local, ownerID) {
		local = nil
	}
	if remote != nil && !ownedBy(remote, ownerID) {
		remote = nil
	}

	switch {
	case local == nil && remote == nil:
		return Decision{Outcome: OutcomeFresh, Doc: models.NewDraftDocument(ownerID)}
	case remote == nil:
		return Decision{Outcome: OutcomeLocal, Doc: *local, UnsavedRemote: true}
	case local == nil:
		return Decision{Outcome: OutcomeRemote, Doc: *remote}
	case local.SavedAt == remote.SavedAt:
		return Decision{Outcome: OutcomeRemote, Doc: *remote}
	default:
		return Decision{Outcome: OutcomeConflict, Local: local, Remote: remote}
	}
}

func ownedBy(doc *models.DraftDocument, ownerID string) bool {
	return doc.OwnerID == "" || doc.OwnerID == ownerID
}
