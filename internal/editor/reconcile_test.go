package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-server/internal/editor"
	"storefront-server/internal/models"
)

func draftDoc(name, owner string, savedAt int64) *models.DraftDocument {
	doc := models.NewDraftDocument(owner)
	doc.Name = name
	doc.SavedAt = savedAt
	return &doc
}

func TestReconcile(t *testing.T) {
	const owner = "owner-a"

	t.Run("nothing stored starts fresh", func(t *testing.T) {
		d := editor.Reconcile(nil, nil, owner)

		assert.Equal(t, editor.OutcomeFresh, d.Outcome)
		assert.Equal(t, owner, d.Doc.OwnerID)
		assert.Empty(t, d.Doc.Name)
		assert.False(t, d.UnsavedRemote)
	})

	t.Run("local only loads local and marks unsaved-remote", func(t *testing.T) {
		local := draftDoc("12V Battery", owner, 500)

		d := editor.Reconcile(local, nil, owner)

		assert.Equal(t, editor.OutcomeLocal, d.Outcome)
		assert.Equal(t, "12V Battery", d.Doc.Name)
		assert.True(t, d.UnsavedRemote)
	})

	t.Run("remote only loads remote and marks saved", func(t *testing.T) {
		remote := draftDoc("12V Battery", owner, 2500)

		d := editor.Reconcile(nil, remote, owner)

		assert.Equal(t, editor.OutcomeRemote, d.Outcome)
		assert.Equal(t, "12V Battery", d.Doc.Name)
		assert.False(t, d.UnsavedRemote)
	})

	t.Run("foreign local snapshot is dropped", func(t *testing.T) {
		// A snapshot owned by A is never auto-loaded into B's session.
		local := draftDoc("A's draft", "owner-a", 500)

		d := editor.Reconcile(local, nil, "owner-b")

		assert.Equal(t, editor.OutcomeFresh, d.Outcome)
		assert.Empty(t, d.Doc.Name)
	})

	t.Run("foreign remote snapshot is dropped", func(t *testing.T) {
		remote := draftDoc("A's draft", "owner-a", 500)

		d := editor.Reconcile(nil, remote, "owner-b")

		assert.Equal(t, editor.OutcomeFresh, d.Outcome)
	})

	t.Run("anonymous snapshot is usable by anyone", func(t *testing.T) {
		local := draftDoc("anon draft", "", 500)

		d := editor.Reconcile(local, nil, owner)

		assert.Equal(t, editor.OutcomeLocal, d.Outcome)
		assert.Equal(t, "anon draft", d.Doc.Name)
	})

	t.Run("differing timestamps surface a conflict with both documents", func(t *testing.T) {
		local := draftDoc("local edits", owner, 100)
		remote := draftDoc("remote edits", owner, 200)

		d := editor.Reconcile(local, remote, owner)

		assert.Equal(t, editor.OutcomeConflict, d.Outcome)
		require.NotNil(t, d.Local)
		require.NotNil(t, d.Remote)
		assert.Equal(t, "local edits", d.Local.Name)
		assert.Equal(t, "remote edits", d.Remote.Name)
	})

	t.Run("conflict regardless of which side is newer", func(t *testing.T) {
		local := draftDoc("local edits", owner, 300)
		remote := draftDoc("remote edits", owner, 200)

		d := editor.Reconcile(local, remote, owner)

		assert.Equal(t, editor.OutcomeConflict, d.Outcome)
	})

	t.Run("equal timestamps tie-break to remote without prompting", func(t *testing.T) {
		local := draftDoc("local copy", owner, 150)
		remote := draftDoc("remote copy", owner, 150)

		d := editor.Reconcile(local, remote, owner)

		assert.Equal(t, editor.OutcomeRemote, d.Outcome)
		assert.Equal(t, "remote copy", d.Doc.Name)
	})

	t.Run("foreign remote with owned local loads local", func(t *testing.T) {
		local := draftDoc("mine", "owner-b", 100)
		remote := draftDoc("theirs", "owner-a", 200)

		d := editor.Reconcile(local, remote, "owner-b")

		assert.Equal(t, editor.OutcomeLocal, d.Outcome)
		assert.Equal(t, "mine", d.Doc.Name)
	})
}
