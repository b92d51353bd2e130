package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sellx/internal/config"
	"sellx/internal/handler"
	"sellx/internal/middleware"
	"sellx/internal/model"
	"sellx/internal/pos"
	"sellx/internal/repository"
	"sellx/internal/service"
	"sellx/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	registerSvc := service.NewRegisterService(registerRepo)
	salesSvc := service.NewSalesService(saleRepo)
	checkoutSvc := service.NewCheckoutService(
		pos.NewSessionStore(),
		userRepo,
		productRepo,
		customerRepo,
		methodRepo,
		registerRepo,
		saleRepo,
		movementRepo,
		dispatcher,
		service.EngineConfigFrom(cfg),
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	registerH := handler.NewRegisterHandler(registerSvc)
	salesH := handler.NewSalesHandler(salesSvc)
	posH := handler.NewPOSHandler(checkoutSvc)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/auth/login", authH.Login)
	v1.GET("/price/:barcode", priceH.GetByBarcode) // no auth: price terminals

	auth := v1.Group("", middleware.JWTAuth(cfg.JWTSecret))

	auth.POST("/registers", registerH.Open)
	auth.GET("/registers/:registerId/current", registerH.Current)
	auth.DELETE("/register-sessions/:id",
		middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleOwner),
		registerH.Close)

	auth.GET("/sales", salesH.List)

	posGroup := auth.Group("/pos/sessions")
	posGroup.POST("", posH.OpenSession)
	posGroup.GET("/:id", posH.GetSession)
	posGroup.DELETE("/:id", posH.Cancel)
	posGroup.POST("/:id/scan", posH.Scan)
	posGroup.PATCH("/:id/items/:lineId", posH.UpdateItem)
	posGroup.DELETE("/:id/items/:lineId", posH.RemoveItem)
	posGroup.PUT("/:id/customer", posH.AttachCustomer)
	posGroup.DELETE("/:id/customer", posH.DetachCustomer)
	posGroup.PUT("/:id/discount", posH.SetDiscount)
	posGroup.PUT("/:id/loyalty", posH.RedeemLoyalty)
	posGroup.POST("/:id/payments", posH.AddPayment)
	posGroup.DELETE("/:id/payments/:payId", posH.RemovePayment)
	posGroup.POST("/:id/finalize", posH.Finalize)

	return r
}
