package editor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-server/internal/editor"
	"storefront-server/internal/models"
)

func TestHTTPDraftClient(t *testing.T) {
	ctx := context.Background()

	t.Run("create posts the document with the bearer token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/drafts", r.URL.Path)
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

			var doc models.DraftDocument
			require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			assert.Equal(t, "12V Battery", doc.Name)

			doc.SavedAt = 2500
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "d1", "doc": doc})
		}))
		defer server.Close()

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		doc := models.NewDraftDocument("owner-1")
		doc.Name = "12V Battery"
		id, saved, err := client.Create(ctx, doc)

		require.NoError(t, err)
		assert.Equal(t, "d1", id)
		assert.Equal(t, int64(2500), saved.SavedAt)
	})

	t.Run("fetch maps 404 to draft not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		_, err := client.Fetch(ctx, "gone")
		assert.ErrorIs(t, err, editor.ErrDraftNotFound)
	})

	t.Run("server errors map to remote unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		_, err := client.Fetch(ctx, "d1")
		assert.ErrorIs(t, err, editor.ErrRemoteUnavailable)
	})

	t.Run("transport failure maps to remote unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close() // connection refused from here on

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		_, _, err := client.Create(ctx, models.NewDraftDocument(""))
		assert.ErrorIs(t, err, editor.ErrRemoteUnavailable)
	})

	t.Run("update returns the server-stamped document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/drafts/d1", r.URL.Path)

			var doc models.DraftDocument
			require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			doc.SavedAt = 4000
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "d1", "doc": doc})
		}))
		defer server.Close()

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		saved, err := client.Update(ctx, "d1", models.NewDraftDocument("owner-1"))
		require.NoError(t, err)
		assert.Equal(t, int64(4000), saved.SavedAt)
	})

	t.Run("delete treats 404 as success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		assert.NoError(t, client.Delete(ctx, "already-gone"))
	})

	t.Run("publish returns the product id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/drafts/d1/publish", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]string{"product_id": "p1"})
		}))
		defer server.Close()

		client := editor.NewHTTPDraftClient(server.URL, "token-1", zap.NewNop())

		productID, err := client.Publish(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, "p1", productID)
	})
}
