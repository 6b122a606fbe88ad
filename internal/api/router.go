package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gourmetcare/platform/docs"
	"github.com/gourmetcare/platform/internal/api/handler"
	"github.com/gourmetcare/platform/internal/api/middleware"
	"github.com/gourmetcare/platform/internal/core/ports"
)

// Deps carries the collaborators the router wires into handlers and
// middleware. Tests pass stubs; main passes the real services.
type Deps struct {
	Users   ports.UserRepository
	Tokens  ports.TokenService
	Auth    ports.AuthService
	UserSvc ports.UserService

	// Production toggles the Secure cookie attribute and suppresses the
	// OTP echo in send-code responses.
	Production bool

	// Mongo and Redis back the readiness probe; Redis may be nil when the
	// in-memory code store is in use. When Mongo is nil the readiness
	// route is not registered (test wiring).
	Mongo *mongo.Database
	Redis *redis.Client
}

// The echoprometheus middleware registers its collectors with the default
// registry when built. It is created once so that building several routers
// (tests build one per case) does not trip duplicate registration.
var (
	promOnce sync.Once
	promMW   echo.MiddlewareFunc
)

func prometheusMiddleware() echo.MiddlewareFunc {
	promOnce.Do(func() {
		promMW = echoprometheus.NewMiddleware("gourmetcare")
	})
	return promMW
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(log zerolog.Logger, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(prometheusMiddleware())
	e.Use(echomiddleware.Logger())

	// --- Handlers and auth chain ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Production)
	userHandler := handler.NewUserHandler(deps.UserSvc)
	authn := middleware.Authenticate(deps.Tokens, deps.Users)

	// --- Auth routes ---
	e.POST("/auth/send-code", authHandler.SendCode)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authn)

	// --- User routes; identity resolution always precedes the role gate ---
	users := e.Group("/users", authn)
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.UpdateMe)
	users.GET("", userHandler.List, middleware.RequireAdmin())
	users.GET("/:id", userHandler.Get, middleware.RequireManager())
	users.PUT("/:id/role", userHandler.UpdateRole, middleware.RequireAdmin())
	users.DELETE("/:id", userHandler.Delete, middleware.RequireSuperAdmin())

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if deps.Mongo != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	}

	return e
}
