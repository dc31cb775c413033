package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hardware-pos/internal/apperr"
	"hardware-pos/internal/product"
	"hardware-pos/internal/product/dto"
	"hardware-pos/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: log}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.GET("/products", h.List)
	rg.GET("/products/search", h.Search)
	rg.GET("/products/:id", h.Get)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
}

type variantRequest struct {
	ID       string          `json:"id"`
	Size     string          `json:"size" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	GST      decimal.Decimal `json:"gst"`
}

type productRequest struct {
	Name       string           `json:"name" binding:"required"`
	CategoryID string           `json:"category_id"`
	PhotoURL   string           `json:"photo_url"`
	Variants   []variantRequest `json:"variants"`
}

func toVariantInputs(reqs []variantRequest) []dto.VariantInput {
	inputs := make([]dto.VariantInput, 0, len(reqs))
	for _, v := range reqs {
		inputs = append(inputs, dto.VariantInput{
			ID:       v.ID,
			Size:     v.Size,
			Price:    v.Price,
			Discount: v.Discount,
			GST:      v.GST,
		})
	}
	return inputs
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prod, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		PhotoURL:   req.PhotoURL,
		Variants:   toVariantInputs(req.Variants),
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) Get(c *gin.Context) {
	prod, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		Search:     c.Query("search"),
		CategoryID: c.Query("category_id"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}

	items, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": filters.Page, "page_size": filters.PageSize})
}

func (h *ProductHandler) Search(c *gin.Context) {
	items, err := h.uc.SearchProducts(c.Request.Context(), c.Query("q"), queryInt(c, "limit", 20))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prod, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:         c.Param("id"),
		Name:       req.Name,
		CategoryID: req.CategoryID,
		PhotoURL:   req.PhotoURL,
		Variants:   toVariantInputs(req.Variants),
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
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
