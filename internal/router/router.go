package router

import (
	"time"

	"saborpos/internal/config"
	"saborpos/internal/handler"
	"saborpos/internal/middleware"
	"saborpos/internal/repository"
	"saborpos/internal/service"
	"saborpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashRepo := repository.NewCashRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	cashSvc := service.NewCashService(cashRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, cashSvc, cashRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	cashH := handler.NewCashHandler(cashSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operator, supervisor, admin — declared per-endpoint
		v1.GET("/products", middleware.RequireRole("operator", "supervisor", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("operator", "supervisor", "admin"), productsH.Get)

		v1.POST("/sales", middleware.RequireRole("operator", "supervisor", "admin"), salesH.Register)
		v1.GET("/sales", middleware.RequireRole("operator", "supervisor", "admin"), salesH.List)
		v1.POST("/sales/split-preview", middleware.RequireRole("operator", "supervisor", "admin"), salesH.SplitPreview)
		v1.DELETE("/sales/:id", middleware.RequireRole("supervisor", "admin"), salesH.Cancel)

		cash := v1.Group("/cash")
		{
			cash.POST("/open", middleware.RequireRole("operator", "supervisor", "admin"), cashH.Open)
			cash.POST("/entries", middleware.RequireRole("operator", "supervisor", "admin"), cashH.RecordEntry)
			cash.GET("/:id/report", middleware.RequireRole("operator", "supervisor", "admin"), cashH.Report)
			cash.POST("/close-preview", middleware.RequireRole("operator", "supervisor", "admin"), cashH.ClosePreview)
			cash.POST("/close", middleware.RequireRole("operator", "supervisor", "admin"), cashH.Close)
			cash.GET("/active", middleware.RequireRole("operator", "supervisor", "admin"), cashH.Active)
			cash.GET("/history", middleware.RequireRole("supervisor", "admin"), cashH.History)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
