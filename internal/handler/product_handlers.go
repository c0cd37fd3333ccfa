package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-server/internal/models"
)

func (h *StorefrontHandler) listProducts(c *gin.Context) {
	cursor := c.Query("cursor")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	products, nextCursor, err := h.catalogService.ListProducts(c.Request.Context(), cursor, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, productListResponse{Products: products, NextCursor: nextCursor})
}

func (h *StorefrontHandler) getProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid product ID format"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
