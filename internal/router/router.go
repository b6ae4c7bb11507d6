package router

import (
	"sync"
	"time"

	"github.com/Ak3mix/ventas-pro/internal/config"
	"github.com/Ak3mix/ventas-pro/internal/handler"
	"github.com/Ak3mix/ventas-pro/internal/middleware"
	"github.com/Ak3mix/ventas-pro/internal/repository"
	"github.com/Ak3mix/ventas-pro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// One mutex shared by every mutating service: writes are serialized
	// end to end, matching the single-writer store underneath.
	var mu sync.Mutex
	sessionSvc := service.NewSessionService(sessionRepo, saleRepo, movementRepo, &mu)
	productSvc := service.NewProductService(productRepo, rdb, &mu)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, sessionSvc, &mu)
	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, sessionSvc, &mu)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	movementsH := handler.NewMovementsHandler(inventorySvc)
	salesH := handler.NewSalesHandler(saleSvc)
	sessionsH := handler.NewSessionsHandler(sessionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.GET("/:id/price", productsH.Price)
		}

		movements := v1.Group("/movements")
		{
			movements.POST("", movementsH.Record)
			movements.GET("", movementsH.List)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Checkout)
			sales.POST("/sync", salesH.Sync)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.GET("", sessionsH.ListClosed)
			sessions.GET("/current", sessionsH.Current)
			sessions.POST("/close", sessionsH.Close)
			sessions.GET("/:id/report", sessionsH.Report)
			sessions.GET("/:id/report.xlsx", sessionsH.ExportReport)
		}
	}

	return r
}
