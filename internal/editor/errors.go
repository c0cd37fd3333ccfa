package editor

import "errors"

var (
	// ErrRemoteUnavailable covers network and server failures on any remote
	// call. Editing continues on the local snapshot; the failed write is
	// retried by the next natural edit.
	ErrRemoteUnavailable = errors.New("remote draft store unavailable")

	// ErrDraftNotFound means the bound draft id no longer exists server-side,
	// typically because it was published or discarded from another device.
	ErrDraftNotFound = errors.New("draft no longer available")

	// ErrConflictUnresolved is returned by operations that need a single
	// authoritative document while a load-time conflict is still waiting for
	// the user's choice.
	ErrConflictUnresolved = errors.New("draft conflict unresolved")

	// ErrDraftClosed is returned when editing or publishing is attempted after
	// the draft reached a terminal state.
	ErrDraftClosed = errors.New("draft is published or discarded")
)
