package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/auth"
	"hardware-pos/internal/cart"
	"hardware-pos/internal/cart/dto"
	"hardware-pos/pkg/logger"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{uc: uc, logger: log}
}

func (h *CartHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/cart", h.Add)
	rg.GET("/cart", h.List)
	rg.PATCH("/cart/:id", h.Update)
	rg.DELETE("/cart/:id", h.Remove)
	rg.DELETE("/cart", h.Clear)
}

type addItemRequest struct {
	VariantID    string           `json:"variant_id" binding:"required"`
	Quantity     int              `json:"quantity" binding:"required"`
	Price        *decimal.Decimal `json:"price"`
	ItemDiscount decimal.Decimal  `json:"item_discount"`
	IsPercentage bool             `json:"is_percentage"`
	Replace      bool             `json:"replace"`
}

func (h *CartHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.uc.AddItem(c.Request.Context(), &dto.AddItemInput{
		OwnerID:      auth.UserID(c.Request.Context()),
		VariantID:    req.VariantID,
		Quantity:     req.Quantity,
		Price:        req.Price,
		ItemDiscount: req.ItemDiscount,
		IsPercentage: req.IsPercentage,
		Replace:      req.Replace,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) List(c *gin.Context) {
	items, err := h.uc.ListItems(c.Request.Context(), auth.UserID(c.Request.Context()))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

type updateItemRequest struct {
	Quantity     *int             `json:"quantity"`
	Price        *decimal.Decimal `json:"price"`
	ItemDiscount *decimal.Decimal `json:"item_discount"`
	IsPercentage *bool            `json:"is_percentage"`
	GST          *decimal.Decimal `json:"gst"`
}

func (h *CartHandler) Update(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.uc.UpdateItem(c.Request.Context(), &dto.UpdateItemInput{
		OwnerID:      auth.UserID(c.Request.Context()),
		ItemID:       c.Param("id"),
		Quantity:     req.Quantity,
		Price:        req.Price,
		ItemDiscount: req.ItemDiscount,
		IsPercentage: req.IsPercentage,
		GST:          req.GST,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.uc.RemoveItem(c.Request.Context(), auth.UserID(c.Request.Context()), c.Param("id")); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.uc.ClearCart(c.Request.Context(), auth.UserID(c.Request.Context())); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
