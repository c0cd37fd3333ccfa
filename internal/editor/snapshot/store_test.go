package snapshot_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-server/internal/editor/snapshot"
	"storefront-server/internal/models"
)

func TestStoreSaveLoad(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	store := snapshot.NewStore(snapshot.NewMemoryKV(), func() time.Time { return now }, zap.NewNop())

	t.Run("load before any save returns nil", func(t *testing.T) {
		assert.Nil(t, store.Load())
	})

	t.Run("save stamps savedAt and load returns the same document", func(t *testing.T) {
		doc := models.NewDraftDocument("owner-1")
		doc.Name = "12V Battery"

		stamped := store.Save(doc)
		assert.Equal(t, now.UnixMilli(), stamped.SavedAt)

		loaded := store.Load()
		require.NotNil(t, loaded)
		assert.Equal(t, stamped, *loaded)
	})

	t.Run("save overwrites the previous snapshot", func(t *testing.T) {
		doc := models.NewDraftDocument("owner-1")
		doc.Name = "12V Battery Pro"
		store.Save(doc)

		loaded := store.Load()
		require.NotNil(t, loaded)
		assert.Equal(t, "12V Battery Pro", loaded.Name)
	})

	t.Run("clear makes subsequent loads return nil", func(t *testing.T) {
		store.Clear()
		assert.Nil(t, store.Load())
	})
}

func TestStoreCorruptSnapshot(t *testing.T) {
	kv := snapshot.NewMemoryKV()
	store := snapshot.NewStore(kv, nil, zap.NewNop())

	require.NoError(t, kv.Set("storefront:product_draft", "{not valid json"))

	// Corrupt data is treated as absent, not as an error.
	assert.Nil(t, store.Load())
}

type failingKV struct{}

func (failingKV) Get(string) (string, error)  { return "", assert.AnError }
func (failingKV) Set(string, string) error    { return assert.AnError }
func (failingKV) Remove(string) error         { return assert.AnError }

func TestStoreAbsorbsStorageFailures(t *testing.T) {
	store := snapshot.NewStore(failingKV{}, nil, zap.NewNop())

	// A failing backend never reaches the caller: save still returns the
	// stamped document and load reports absence.
	doc := models.NewDraftDocument("owner-1")
	stamped := store.Save(doc)
	assert.Positive(t, stamped.SavedAt)
	assert.Nil(t, store.Load())
	store.Clear()
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	kv, err := snapshot.NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get("missing")
		assert.ErrorIs(t, err, snapshot.ErrKeyNotFound)
	})

	t.Run("set, get, overwrite, remove", func(t *testing.T) {
		require.NoError(t, kv.Set("k", "v1"))
		got, err := kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)

		require.NoError(t, kv.Set("k", "v2"))
		got, err = kv.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)

		require.NoError(t, kv.Remove("k"))
		_, err = kv.Get("k")
		assert.ErrorIs(t, err, snapshot.ErrKeyNotFound)
	})

	t.Run("removing a missing key is not an error", func(t *testing.T) {
		assert.NoError(t, kv.Remove("never-set"))
	})

	t.Run("values survive reopen", func(t *testing.T) {
		require.NoError(t, kv.Set("persisted", "value"))
		require.NoError(t, kv.Close())

		reopened, err := snapshot.NewSQLiteKV(path)
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.Get("persisted")
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})
}
