package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/auth"
	"hardware-pos/internal/order"
	"hardware-pos/internal/order/dto"
	"hardware-pos/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/place_order", h.PlaceOrder)
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.Get)
	rg.GET("/orders/:id/bill", h.Bill)
	rg.POST("/order-management/:id/update_status", h.UpdateStatus)
}

// placeOrderRequest is form-encoded: the till posts it straight from the
// checkout form.
type placeOrderRequest struct {
	CustomerID    string           `form:"customer"`
	PayType       string           `form:"pay_type"`
	PaidAmount    decimal.Decimal  `form:"paid_amount"`
	OrderDiscount decimal.Decimal  `form:"discount"`
	IsPercentage  bool             `form:"is_percentage"`
	Note          string           `form:"note"`
	Total         *decimal.Decimal `form:"total"`
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ord, err := h.uc.PlaceOrder(c.Request.Context(), &dto.PlaceOrderInput{
		OwnerID:        auth.UserID(c.Request.Context()),
		CustomerID:     req.CustomerID,
		PayType:        req.PayType,
		PaidAmount:     req.PaidAmount,
		OrderDiscount:  req.OrderDiscount,
		IsPercentage:   req.IsPercentage,
		Note:           req.Note,
		SubmittedTotal: req.Total,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

func (h *OrderHandler) Get(c *gin.Context) {
	ord, err := h.uc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// Bill renders the printable receipt payload: the order with its net amount
// after refunds.
func (h *OrderHandler) Bill(c *gin.Context) {
	ord, err := h.uc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":      ord,
		"net_amount": ord.NetAmount(),
	})
}

func (h *OrderHandler) List(c *gin.Context) {
	filters := &dto.OrderFilters{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
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

	items, total, err := h.uc.ListOrders(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

type updateStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ord, err := h.uc.UpdateStatus(c.Request.Context(), &dto.UpdateStatusInput{
		OrderID: c.Param("id"),
		Status:  req.Status,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}
