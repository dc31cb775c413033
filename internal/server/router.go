package server

import (
	"github.com/gin-gonic/gin"

	"hardware-pos/config"
	"hardware-pos/internal/auth"
	carthandler "hardware-pos/internal/cart/handler"
	categoryhandler "hardware-pos/internal/category/handler"
	customerhandler "hardware-pos/internal/customer/handler"
	inventoryhandler "hardware-pos/internal/inventory/handler"
	orderhandler "hardware-pos/internal/order/handler"
	producthandler "hardware-pos/internal/product/handler"
	purchasehandler "hardware-pos/internal/purchase/handler"
	returnshandler "hardware-pos/internal/returns/handler"
	supplierhandler "hardware-pos/internal/supplier/handler"
)

// Handlers bundles every feature handler for route registration.
type Handlers struct {
	Category  *categoryhandler.CategoryHandler
	Supplier  *supplierhandler.SupplierHandler
	Customer  *customerhandler.CustomerHandler
	Product   *producthandler.ProductHandler
	Purchase  *purchasehandler.PurchaseHandler
	Inventory *inventoryhandler.InventoryHandler
	Cart      *carthandler.CartHandler
	Order     *orderhandler.OrderHandler
	Returns   *returnshandler.ReturnsHandler
}

func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Server.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(auth.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	h.Category.Register(api)
	h.Supplier.Register(api)
	h.Customer.Register(api)
	h.Product.Register(api)
	h.Purchase.Register(api)
	h.Inventory.Register(api)
	h.Cart.Register(api)
	h.Order.Register(api)
	h.Returns.Register(api)

	return router
}
