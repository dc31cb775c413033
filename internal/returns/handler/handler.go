package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/auth"
	"hardware-pos/internal/returns"
	"hardware-pos/internal/returns/dto"
	"hardware-pos/pkg/logger"
)

type ReturnsHandler struct {
	uc     returns.UseCase
	logger logger.ZapLogger
}

func NewReturnsHandler(uc returns.UseCase, log logger.ZapLogger) *ReturnsHandler {
	return &ReturnsHandler{uc: uc, logger: log}
}

func (h *ReturnsHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/order-management/:id/create_return", h.Create)
	rg.GET("/returns-management", h.List)
	rg.GET("/returns-management/statistics", h.Statistics)
	rg.GET("/returns-management/:id", h.Get)
	rg.POST("/returns-management/:id/approve_return", h.Approve)
	rg.POST("/returns-management/:id/reject_return", h.Reject)
	rg.POST("/returns-management/:id/complete_return", h.Complete)
}

type returnItemRequest struct {
	OrderItemID    string `json:"order_item_id" binding:"required"`
	ReturnQuantity int    `json:"return_quantity" binding:"required"`
	Condition      string `json:"condition" binding:"required"`
}

type createReturnRequest struct {
	Reason        string              `json:"reason" binding:"required"`
	Notes         string              `json:"notes"`
	ProcessingFee decimal.Decimal     `json:"processing_fee"`
	Items         []returnItemRequest `json:"items" binding:"required"`
}

func (h *ReturnsHandler) Create(c *gin.Context) {
	var req createReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := &dto.CreateReturnInput{
		OrderID:       c.Param("id"),
		Reason:        req.Reason,
		Notes:         req.Notes,
		ProcessingFee: req.ProcessingFee,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, dto.ReturnItemInput{
			OrderItemID:    it.OrderItemID,
			ReturnQuantity: it.ReturnQuantity,
			Condition:      it.Condition,
		})
	}

	ret, err := h.uc.CreateReturn(c.Request.Context(), input)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ret)
}

func (h *ReturnsHandler) Get(c *gin.Context) {
	ret, err := h.uc.GetReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ret)
}

func (h *ReturnsHandler) List(c *gin.Context) {
	filters := &dto.ReturnFilters{
		OrderID:  c.Query("order_id"),
		Status:   c.Query("status"),
		Reason:   c.Query("reason"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	items, total, err := h.uc.ListReturns(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

func (h *ReturnsHandler) Approve(c *gin.Context) {
	ret, err := h.uc.ApproveReturn(c.Request.Context(), c.Param("id"), auth.UserID(c.Request.Context()))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ret)
}

func (h *ReturnsHandler) Reject(c *gin.Context) {
	ret, err := h.uc.RejectReturn(c.Request.Context(), c.Param("id"), auth.UserID(c.Request.Context()))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ret)
}

func (h *ReturnsHandler) Statistics(c *gin.Context) {
	stats, err := h.uc.GetStatistics(c.Request.Context())
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReturnsHandler) Complete(c *gin.Context) {
	ret, err := h.uc.CompleteReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ret)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
