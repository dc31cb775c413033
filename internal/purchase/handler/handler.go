package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/purchase"
	"hardware-pos/internal/purchase/dto"
	"hardware-pos/pkg/logger"
)

type PurchaseHandler struct {
	uc     purchase.UseCase
	logger logger.ZapLogger
}

func NewPurchaseHandler(uc purchase.UseCase, log logger.ZapLogger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, logger: log}
}

func (h *PurchaseHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/purchases", h.Create)
	rg.GET("/purchases", h.List)
	rg.GET("/purchases/:id", h.Get)
	rg.DELETE("/purchases/:id", h.Delete)
}

type purchaseRequest struct {
	SupplierID    string          `json:"supplier_id" binding:"required"`
	VariantID     string          `json:"variant_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Discount      decimal.Decimal `json:"discount"`
	GST           decimal.Decimal `json:"gst"`
	Date          *time.Time      `json:"date"`
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := &dto.CreatePurchaseInput{
		SupplierID:    req.SupplierID,
		VariantID:     req.VariantID,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		Discount:      req.Discount,
		GST:           req.GST,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	pur, err := h.uc.CreatePurchase(c.Request.Context(), input)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, pur)
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	pur, err := h.uc.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pur)
}

func (h *PurchaseHandler) List(c *gin.Context) {
	filters := &dto.PurchaseFilters{
		SupplierID: c.Query("supplier_id"),
		VariantID:  c.Query("variant_id"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateTo = &t
		}
	}

	items, total, err := h.uc.ListPurchases(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
	if err := h.uc.DeletePurchase(c.Request.Context(), c.Param("id")); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
