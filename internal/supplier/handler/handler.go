package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/supplier"
	"hardware-pos/internal/supplier/dto"
	"hardware-pos/pkg/logger"
)

type SupplierHandler struct {
	uc     supplier.UseCase
	logger logger.ZapLogger
}

func NewSupplierHandler(uc supplier.UseCase, log logger.ZapLogger) *SupplierHandler {
	return &SupplierHandler{uc: uc, logger: log}
}

func (h *SupplierHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/suppliers", h.Create)
	rg.GET("/suppliers", h.List)
	rg.GET("/suppliers/:id", h.Get)
	rg.PUT("/suppliers/:id", h.Update)
	rg.DELETE("/suppliers/:id", h.Delete)
}

type supplierRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sup, err := h.uc.CreateSupplier(c.Request.Context(), &dto.CreateSupplierInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

func (h *SupplierHandler) Get(c *gin.Context) {
	sup, err := h.uc.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) List(c *gin.Context) {
	filters := &dto.SupplierFilters{
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}

	items, total, err := h.uc.ListSuppliers(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sup, err := h.uc.UpdateSupplier(c.Request.Context(), &dto.UpdateSupplierInput{
		ID:      c.Param("id"),
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
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
