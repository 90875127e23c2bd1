package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/feed"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	salerepo "storefront/internal/repository/sale"
	sessionrepo "storefront/internal/repository/session"
	"storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
	sessionsvc "storefront/internal/service/session"
)

// Deps carries the wired services and repositories the routes need.
type Deps struct {
	Catalog    *catalog.Service
	Checkout   *checkout.Service
	Orders     orderrepo.Repository
	Sales      salerepo.Repository
	Categories categoryrepo.Repository
	Sessions   *sessionsvc.Service
	Carts      sessionrepo.Repository
	TikTok     *feed.TikTokWriter
	Meta       *feed.MetaSyncer

	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/products", h.listProducts)
	router.GET("/products/:slug", h.getProduct)
	router.GET("/categories", h.listCategories)
	router.GET("/sales", h.listActiveSales)

	withCart := router.Group("/", h.guestSession)
	{
		withCart.GET("/cart", h.getCart)
		withCart.POST("/cart/items", h.addCartItem)
		withCart.PATCH("/cart/items", h.updateCartItem)
		withCart.DELETE("/cart/items", h.removeCartItem)
		withCart.DELETE("/cart", h.clearCart)
		withCart.POST("/checkout", h.placeOrder)
	}

	admin := router.Group("/admin")
	{
		admin.GET("/orders", h.listOrders)
		admin.GET("/orders/:id", h.getOrder)
		admin.PATCH("/orders/:id/status", h.updateOrderStatus)
		admin.GET("/sales", h.listSales)
		admin.POST("/sales", h.createSale)
		admin.DELETE("/sales/:id", h.deleteSale)
	}

	router.GET("/feeds/tiktok.csv", h.tiktokFeed)
	router.POST("/feeds/meta/sync", h.metaSync)

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
