package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/auth"
	"hardware-pos/internal/inventory"
	"hardware-pos/internal/inventory/dto"
	"hardware-pos/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.ListStock)
	rg.GET("/inventory/movements", h.ListMovements)
	rg.GET("/inventory/stock/:variant_id", h.GetStock)
	rg.POST("/inventory/stock/:variant_id/adjust", h.Adjust)
}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	inv, err := h.uc.GetStock(c.Request.Context(), c.Param("variant_id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) ListStock(c *gin.Context) {
	filters := &dto.StockFilters{
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if v := c.Query("max_stock"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.MaxStock = &n
		}
	}

	items, total, err := h.uc.ListStock(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

type adjustRequest struct {
	Delta int    `json:"delta" binding:"required"`
	Notes string `json:"notes"`
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quantity, err := h.uc.AdjustStock(c.Request.Context(), &dto.AdjustStockInput{
		VariantID: c.Param("variant_id"),
		Delta:     req.Delta,
		Notes:     req.Notes,
		UserID:    auth.UserID(c.Request.Context()),
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variant_id": c.Param("variant_id"), "quantity": quantity})
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	filters := &dto.MovementFilters{
		VariantID:    c.Query("variant_id"),
		MovementType: c.Query("movement_type"),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 20),
	}

	items, total, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
