package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-server/internal/models"
)

// RemoteStore is the multi-device draft resource. All failures come back as
// typed errors: ErrDraftNotFound for a dead id, ErrRemoteUnavailable for
// transport and server failures.
type RemoteStore interface {
	// Create persists a new record and returns its server-assigned id along
	// with the document carrying the server's savedAt.
	Create(ctx context.Context, doc models.DraftDocument) (string, models.DraftDocument, error)
	// Fetch returns the current record, or ErrDraftNotFound. A published
	// draft is gone, never returned.
	Fetch(ctx context.Context, id string) (*models.DraftDocument, error)
	// Update overwrites the record; the server stamps savedAt with its own
	// clock and the returned document carries it.
	Update(ctx context.Context, id string, doc models.DraftDocument) (models.DraftDocument, error)
	// Delete removes the record. Idempotent: a missing id is not an error.
	Delete(ctx context.Context, id string) error
}

// RemotePublisher converts a bound draft into a permanent catalog product.
type RemotePublisher interface {
	Publish(ctx context.Context, id string) (string, error)
}

// Compile-time check
var _ RemoteStore = (*HTTPDraftClient)(nil)
var _ RemotePublisher = (*HTTPDraftClient)(nil)

// HTTPDraftClient talks to the storefront draft API with a bearer token.
type HTTPDraftClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewHTTPDraftClient(baseURL, accessToken string, logger *zap.Logger) *HTTPDraftClient {
	return &HTTPDraftClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("HTTPDraftClient"),
	}
}

// wireDraft mirrors the server's draft responses.
type wireDraft struct {
	ID  string               `json:"id"`
	Doc models.DraftDocument `json:"doc"`
}

func (c *HTTPDraftClient) Create(ctx context.Context, doc models.DraftDocument) (string, models.DraftDocument, error) {
	var created wireDraft
	err := c.do(ctx, http.MethodPost, "/api/drafts", doc, http.StatusCreated, &created)
	if err != nil {
		return "", models.DraftDocument{}, err
	}
	return created.ID, created.Doc, nil
}

func (c *HTTPDraftClient) Fetch(ctx context.Context, id string) (*models.DraftDocument, error) {
	var fetched wireDraft
	err := c.do(ctx, http.MethodGet, "/api/drafts/"+id, nil, http.StatusOK, &fetched)
	if err != nil {
		return nil, err
	}
	return &fetched.Doc, nil
}

func (c *HTTPDraftClient) Update(ctx context.Context, id string, doc models.DraftDocument) (models.DraftDocument, error) {
	var updated wireDraft
	err := c.do(ctx, http.MethodPut, "/api/drafts/"+id, doc, http.StatusOK, &updated)
	if err != nil {
		return models.DraftDocument{}, err
	}
	return updated.Doc, nil
}

func (c *HTTPDraftClient) Delete(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/api/drafts/"+id, nil, http.StatusNoContent, nil)
	if errors.Is(err, ErrDraftNotFound) {
		return nil
	}
	return err
}

func (c *HTTPDraftClient) Publish(ctx context.Context, id string) (string, error) {
	var resp struct {
		ProductID string `json:"product_id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/drafts/"+id+"/publish", nil, http.StatusOK, &resp)
	if err != nil {
		return "", err
	}
	return resp.ProductID, nil
}

// do executes one request and decodes the response into out (when non-nil).
// Status codes other than wantStatus map onto the error taxonomy.
func (c *HTTPDraftClient) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Draft API request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == wantStatus:
	case resp.StatusCode == http.StatusNotFound:
		return ErrDraftNotFound
	default:
		c.logger.Warn("Draft API returned unexpected status",
			zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrRemoteUnavailable, err)
		}
	}
	return nil
}
