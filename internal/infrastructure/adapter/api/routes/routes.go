package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/fraud-scoring/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Fraud  *handler.FraudHandler
	Admin  *handler.AdminHandler
	Health *handler.HealthHandler
}

// MiddlewareOptions configures the global middleware chain
type MiddlewareOptions struct {
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
	Observer    middleware.HTTPObserver
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, accounts usecase.AccountUseCase, metrics http.Handler) {
	router.GET("/", h.Health.Root)
	router.GET("/health", h.Health.Health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
	}

	authenticated := router.Group("/", middleware.Authenticate(accounts))

	userRoutes := authenticated.Group("/user")
	{
		userRoutes.GET("/me", h.User.Me)
		userRoutes.GET("/me/credit-history", h.User.CreditHistory)
		userRoutes.GET("/transactions", h.User.Transactions)
		userRoutes.GET("/stats", h.User.Stats)
	}

	fraudRoutes := authenticated.Group("/fraud")
	{
		fraudRoutes.POST("/credits/purchase", h.Fraud.PurchaseCredits)
		fraudRoutes.GET("/credits/balance", h.Fraud.Balance)
		fraudRoutes.POST("/predict", h.Fraud.Predict)
		fraudRoutes.POST("/transactions/:id/feedback", h.Fraud.SubmitFeedback)
	}

	adminRoutes := authenticated.Group("/admin", middleware.RequireAdmin())
	{
		adminRoutes.GET("/users", h.Admin.ListUsers)
		adminRoutes.PUT("/users/:id/credits", h.Admin.SetCredits)
		adminRoutes.DELETE("/users/:id", h.Admin.DeleteUser)
		adminRoutes.GET("/stats", h.Admin.Stats)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, opts MiddlewareOptions) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if opts.Observer != nil {
		router.Use(middleware.Metrics(opts.Observer))
	}
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.RateLimit(opts.RateRPS, opts.RateBurst))
}

// NewRouter builds a gin engine with the middleware chain and every route
func NewRouter(logger coreport.Logger, opts MiddlewareOptions, h Handlers, accounts usecase.AccountUseCase, metrics http.Handler) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	SetupMiddlewares(router, logger, opts)
	SetupRoutes(router, h, accounts, metrics)
	return router
}
