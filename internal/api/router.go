package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/contactdesk/contact-api/internal/api/handler"
	"github.com/contactdesk/contact-api/internal/api/middleware"
	"github.com/contactdesk/contact-api/internal/core/ports"
	"github.com/contactdesk/contact-api/internal/core/token"
)

// Dependencies carries the wired collaborators the router needs. Everything
// is constructed explicitly in main and passed down; no global registry.
type Dependencies struct {
	Logger   zerolog.Logger
	Auth     ports.AuthService
	Users    ports.UserService
	Contacts ports.ContactService
	Tokens   *token.Issuer
	Limiter  handler.LoginLimiter
	Mongo    *mongo.Database
	Redis    *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("contactapi"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Limiter, deps.Logger)
	userHandler := handler.NewUserHandler(deps.Users)
	contactHandler := handler.NewContactHandler(deps.Contacts)
	guard := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/refresh", authHandler.Refresh)

	// --- User routes (all guarded) ---
	users := apiGroup.Group("/users", guard)
	users.GET("/current", userHandler.Current)
	users.GET("/:id", userHandler.GetByID)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Contact routes (reads public, writes guarded) ---
	apiGroup.GET("/contacts", contactHandler.List)
	apiGroup.GET("/contacts/:id", contactHandler.Get)
	apiGroup.POST("/contacts", contactHandler.Create, guard)
	apiGroup.PATCH("/contacts/:id", contactHandler.Update, guard)
	apiGroup.DELETE("/contacts/:id", contactHandler.Delete, guard)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
