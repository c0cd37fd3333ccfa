package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-server/internal/middleware"
	"storefront-server/internal/models"
)

func (h *StorefrontHandler) createDraft(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var doc models.DraftDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	draft, err := h.draftService.CreateDraft(c.Request.Context(), ownerID, doc)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDraftResponse(draft))
}

func (h *StorefrontHandler) getDraft(c *gin.Context) {
	ownerID, draftID, ok := h.draftRequestIDs(c)
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), ownerID, draftID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftResponse(draft))
}

func (h *StorefrontHandler) updateDraft(c *gin.Context) {
	ownerID, draftID, ok := h.draftRequestIDs(c)
	if !ok {
		return
	}

	var doc models.DraftDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	draft, err := h.draftService.UpdateDraft(c.Request.Context(), ownerID, draftID, doc)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftResponse(draft))
}

func (h *StorefrontHandler) deleteDraft(c *gin.Context) {
	ownerID, draftID, ok := h.draftRequestIDs(c)
	if !ok {
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), ownerID, draftID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StorefrontHandler) listDrafts(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	cursor := c.Query("cursor")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	drafts, nextCursor, err := h.draftService.ListDrafts(c.Request.Context(), ownerID, cursor, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := draftListResponse{
		Drafts:     make([]draftResponse, 0, len(drafts)),
		NextCursor: nextCursor,
	}
	for i := range drafts {
		resp.Drafts = append(resp.Drafts, toDraftResponse(&drafts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StorefrontHandler) publishDraft(c *gin.Context) {
	ownerID, draftID, ok := h.draftRequestIDs(c)
	if !ok {
		return
	}

	product, err := h.publishService.Publish(c.Request.Context(), ownerID, draftID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, publishResponse{ProductID: product.ID.String()})
}

// draftRequestIDs extracts the authenticated owner and the :id path param,
// writing the error response itself when either is missing.
func (h *StorefrontHandler) draftRequestIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.logger.Warn("Invalid draft ID format", zap.String("id", c.Param("id")))
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid draft ID format"})
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, draftID, true
}
