package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-server/internal/middleware"
	"storefront-server/internal/models"
	"storefront-server/internal/service"
)

// StorefrontHandler handles HTTP requests for drafts and the public catalog.
type StorefrontHandler struct {
	draftService   service.DraftService
	publishService service.PublishService
	catalogService service.CatalogService
	logger         *zap.Logger
	jwtSecret      string
}

func NewStorefrontHandler(
	draftService service.DraftService,
	publishService service.PublishService,
	catalogService service.CatalogService,
	logger *zap.Logger,
	jwtSecret string,
) *StorefrontHandler {
	return &StorefrontHandler{
		draftService:   draftService,
		publishService: publishService,
		catalogService: catalogService,
		logger:         logger.Named("StorefrontHandler"),
		jwtSecret:      jwtSecret,
	}
}

// RegisterRoutes wires all API routes. Draft routes require a valid access
// token; catalog routes are public.
func (h *StorefrontHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	drafts := api.Group("/drafts", middleware.JWTAuth(h.jwtSecret, h.logger))
	{
		drafts.POST("", h.createDraft)
		drafts.GET("", h.listDrafts)
		drafts.GET("/:id", h.getDraft)
		drafts.PUT("/:id", h.updateDraft)
		drafts.DELETE("/:id", h.deleteDraft)
		drafts.POST("/:id/publish", h.publishDraft)
	}

	products := api.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
	}
}

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrDraftNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Resource not found"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Error: "Forbidden"}
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errResp = models.ErrorResponse{Error: "Unauthorized"}
	case errors.Is(err, models.ErrAlreadyPublished):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Error: "Draft has already been published"}
	case errors.Is(err, models.ErrInvalidCursor):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: "Invalid pagination cursor"}
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: err.Error()}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
