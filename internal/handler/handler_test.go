package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-server/internal/handler"
	"storefront-server/internal/models"
	serviceMocks "storefront-server/internal/service/mocks"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	router         *gin.Engine
	draftService   *serviceMocks.DraftService
	publishService *serviceMocks.PublishService
	catalogService *serviceMocks.CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		draftService:   new(serviceMocks.DraftService),
		publishService: new(serviceMocks.PublishService),
		catalogService: new(serviceMocks.CatalogService),
	}
	h := handler.NewStorefrontHandler(env.draftService, env.publishService, env.catalogService, zap.NewNop(), testJWTSecret)
	env.router = gin.New()
	h.RegisterRoutes(env.router)
	return env
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateDraft(t *testing.T) {
	ownerID := uuid.New()
	token := signToken(t, ownerID)

	t.Run("successful create returns 201 with stamped doc", func(t *testing.T) {
		env := newTestEnv(t)

		draft := &models.ProductDraft{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Doc:     models.DraftDocument{Name: "Walnut desk", SavedAt: 1700000000000, OwnerID: ownerID.String()},
			SavedAt: 1700000000000,
		}
		env.draftService.On("CreateDraft", mock.Anything, ownerID, mock.Anything).Return(draft, nil).Once()

		rec := doRequest(env, http.MethodPost, "/api/drafts", token, models.DraftDocument{Name: "Walnut desk"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp struct {
			ID  string               `json:"id"`
			Doc models.DraftDocument `json:"doc"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, draft.ID.String(), resp.ID)
		assert.Equal(t, int64(1700000000000), resp.Doc.SavedAt)
		env.draftService.AssertExpectations(t)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		env := newTestEnv(t)

		rec := doRequest(env, http.MethodPost, "/api/drafts", "", models.DraftDocument{})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env.draftService.AssertNotCalled(t, "CreateDraft")
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/drafts", bytes.NewBufferString("{not json"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateDraft(t *testing.T) {
	ownerID := uuid.New()
	draftID := uuid.New()
	token := signToken(t, ownerID)

	t.Run("successful update returns the saved doc", func(t *testing.T) {
		env := newTestEnv(t)

		updated := &models.ProductDraft{
			ID:      draftID,
			OwnerID: ownerID,
			Doc:     models.DraftDocument{Name: "New name", SavedAt: 1700000001000},
			SavedAt: 1700000001000,
		}
		env.draftService.On("UpdateDraft", mock.Anything, ownerID, draftID, mock.Anything).Return(updated, nil).Once()

		rec := doRequest(env, http.MethodPut, "/api/drafts/"+draftID.String(), token, models.DraftDocument{Name: "New name"})

		assert.Equal(t, http.StatusOK, rec.Code)
		env.draftService.AssertExpectations(t)
	})

	t.Run("missing draft returns 404", func(t *testing.T) {
		env := newTestEnv(t)

		env.draftService.On("UpdateDraft", mock.Anything, ownerID, draftID, mock.Anything).Return(nil, models.ErrNotFound).Once()

		rec := doRequest(env, http.MethodPut, "/api/drafts/"+draftID.String(), token, models.DraftDocument{})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid draft id returns 400", func(t *testing.T) {
		env := newTestEnv(t)

		rec := doRequest(env, http.MethodPut, "/api/drafts/not-a-uuid", token, models.DraftDocument{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env.draftService.AssertNotCalled(t, "UpdateDraft")
	})
}

func TestDeleteDraft(t *testing.T) {
	ownerID := uuid.New()
	draftID := uuid.New()
	token := signToken(t, ownerID)

	t.Run("delete returns 204", func(t *testing.T) {
		env := newTestEnv(t)

		env.draftService.On("DeleteDraft", mock.Anything, ownerID, draftID).Return(nil).Once()

		rec := doRequest(env, http.MethodDelete, "/api/drafts/"+draftID.String(), token, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		env.draftService.AssertExpectations(t)
	})
}

func TestPublishDraft(t *testing.T) {
	ownerID := uuid.New()
	draftID := uuid.New()
	token := signToken(t, ownerID)

	t.Run("publish returns the new product id", func(t *testing.T) {
		env := newTestEnv(t)

		product := &models.Product{ID: uuid.New(), DraftID: draftID, OwnerID: ownerID}
		env.publishService.On("Publish", mock.Anything, ownerID, draftID).Return(product, nil).Once()

		rec := doRequest(env, http.MethodPost, "/api/drafts/"+draftID.String()+"/publish", token, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			ProductID string `json:"product_id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, product.ID.String(), resp.ProductID)
		env.publishService.AssertExpectations(t)
	})

	t.Run("publishing a missing draft returns 404", func(t *testing.T) {
		env := newTestEnv(t)

		env.publishService.On("Publish", mock.Anything, ownerID, draftID).Return(nil, models.ErrNotFound).Once()

		rec := doRequest(env, http.MethodPost, "/api/drafts/"+draftID.String()+"/publish", token, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("public listing requires no token", func(t *testing.T) {
		env := newTestEnv(t)

		products := []models.Product{{ID: uuid.New(), Name: "Walnut desk", Active: true}}
		env.catalogService.On("ListProducts", mock.Anything, "", 0).Return(products, "", nil).Once()

		rec := doRequest(env, http.MethodGet, "/api/products", "", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		env.catalogService.AssertExpectations(t)
	})

	t.Run("invalid cursor returns 400", func(t *testing.T) {
		env := newTestEnv(t)

		env.catalogService.On("ListProducts", mock.Anything, "garbage", 0).Return(nil, "", models.ErrInvalidCursor).Once()

		rec := doRequest(env, http.MethodGet, "/api/products?cursor=garbage", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
