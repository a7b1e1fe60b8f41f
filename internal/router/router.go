package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/config"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/handler"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/middleware"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/service"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"
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
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	cashboxRepo := repository.NewCashboxRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	costRepo := repository.NewCostRepository(db)
	handoverRepo := repository.NewHandoverRepository(db)
	returnedRepo := repository.NewReturnedRepository(db)
	sellerRepo := repository.NewSellerRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	policy := service.NewBonusPolicy(cfg.ReferralBonus, cfg.RefereeBonus, cfg.BonusPercent)

	authSvc := service.NewAuthService(sellerRepo, cfg)
	cashboxSvc := service.NewCashboxService(cashboxRepo)
	inventorySvc := service.NewInventoryService(productRepo)
	clientSvc := service.NewClientService(clientRepo, paymentRepo, dispatcher, policy)
	productSvc := service.NewProductService(productRepo, inventorySvc, dispatcher)
	paymentSvc := service.NewPaymentService(paymentRepo, productRepo, clientRepo, cashboxRepo, inventorySvc, dispatcher, policy)
	costSvc := service.NewCostService(costRepo, cashboxRepo, dispatcher)
	handoverSvc := service.NewHandoverService(handoverRepo, sellerRepo, cashboxRepo)
	returnedSvc := service.NewReturnedService(returnedRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cashboxH := handler.NewCashboxHandler(cashboxSvc, handoverSvc)
	clientH := handler.NewClientHandler(clientSvc)
	productH := handler.NewProductHandler(productSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	costH := handler.NewCostHandler(costSvc)
	returnH := handler.NewReturnHandler(returnedSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Legacy public reads consumed by the storefront widgets.
	r.GET("/client/get-all", clientH.List)
	r.GET("/costs/get-all", costH.ListAll)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSeller)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	api := r.Group("/", jwtMW)
	{
		cashbox := api.Group("/cashbox", anyRole)
		{
			cashbox.GET("", cashboxH.Get)
			cashbox.GET("/transactions", cashboxH.ListTransactions)
			cashbox.POST("/deposit", cashboxH.Deposit)
			cashbox.POST("/expense", cashboxH.Expense)
			cashbox.POST("/return", cashboxH.ReverseTransaction)
			cashbox.POST("/handover", cashboxH.CreateHandover)
			cashbox.POST("/accept-handover", cashboxH.AcceptHandover)
			cashbox.POST("/cancel-handover", cashboxH.CancelHandover)
			cashbox.GET("/handovers", cashboxH.ListHandovers)
			cashbox.GET("/supervisors", cashboxH.Supervisors)
		}

		payment := api.Group("/payment", anyRole)
		{
			payment.POST("/create", paymentH.Create)
			payment.GET("/get-all", paymentH.List)
			payment.GET("/:id", paymentH.Get)
			payment.PUT("/update/:id", paymentH.Update)
			payment.DELETE("/delete/:id", paymentH.Delete)
		}

		client := api.Group("/client", anyRole)
		{
			client.POST("/create", clientH.Create)
			client.GET("/debtors", clientH.Debtors)
			client.GET("/:id", clientH.Get)
			client.PUT("/update/:id", clientH.Update)
			client.DELETE("/delete/:id", adminOnly, clientH.Delete)
			client.POST("/add-client/debt/:id", clientH.AddDebt)
			client.POST("/pay-debt/:id", clientH.PayDebt)
		}

		costs := api.Group("/costs", anyRole)
		{
			costs.POST("/create", costH.Create)
			costs.GET("", costH.List)
			costs.PUT("/update/:id", costH.Update)
			costs.DELETE("/delete/:id", costH.Delete)
		}

		product := api.Group("/product", anyRole)
		{
			product.GET("/get-all", productH.List)
			product.GET("/barcode/:barcode", productH.GetByBarcode)
			product.GET("/:id", productH.Get)
			product.POST("/create", productH.Create)
			product.PUT("/update/:id", productH.Update)
			product.PATCH("/:id/stock", productH.AdjustStock)
			product.DELETE("/delete/:id", adminOnly, productH.Delete)
		}

		returned := api.Group("/returned", anyRole)
		{
			returned.POST("/create", returnH.Create)
			returned.GET("/get-all", returnH.List)
			returned.DELETE("/delete/:id", adminOnly, returnH.Delete)
		}

		seller := api.Group("/seller", adminOnly)
		{
			seller.POST("/create", authH.CreateSeller)
			seller.GET("/get-all", authH.ListSellers)
			seller.PUT("/update/:id", authH.UpdateSeller)
			seller.DELETE("/delete/:id", authH.DeleteSeller)
		}
	}

	return r
}
