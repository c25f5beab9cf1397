package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/softsolution/lending-api/docs"
	"github.com/softsolution/lending-api/internal/api/handler"
	"github.com/softsolution/lending-api/internal/api/middleware"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
	"github.com/softsolution/lending-api/internal/infrastructure/http/handlers"
)

const serviceName = "lending-api"

// Deps holds everything the HTTP layer needs. Services are built by main.
type Deps struct {
	Log zerolog.Logger

	Auth         ports.AuthService
	Users        ports.UserService
	Loans        ports.LoanService
	Applications ports.ApplicationService
	Quotes       ports.QuoteService
	Contacts     ports.ContactService

	Tokens       ports.TokenVerifier
	Identities   ports.UserFinder
	LoginLimiter ports.LoginLimiter

	// Pingers back the readiness probe, keyed by dependency name.
	Pingers map[string]handlers.PingFunc

	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.ContextLogger(d.Log))
	e.Use(middleware.RequestMetrics())
	e.Use(middleware.AccessLog(d.Log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("10M"))
	if d.RateLimitRequests > 0 && d.RateLimitWindow > 0 {
		e.Use(echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool { return c.Path() == "/health" || c.Path() == "/health/ready" },
			Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(d.RateLimitRequests) / d.RateLimitWindow.Seconds()),
				Burst:     d.RateLimitRequests,
				ExpiresIn: d.RateLimitWindow,
			}),
		}))
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Dependencies ---
	authn := middleware.RequireAuthenticated(d.Tokens, d.Identities)
	admin := middleware.RequireRole(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	loanHandler := handler.NewLoanHandler(d.Loans)
	appHandler := handler.NewApplicationHandler(d.Applications)
	quoteHandler := handler.NewQuoteHandler(d.Quotes)
	contactHandler := handler.NewContactHandler(d.Contacts)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.LoginThrottle(d.LoginLimiter))

	// --- Profile ---
	users := e.Group("/users", authn)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)

	// --- Loan catalogue: public reads, admin writes ---
	loans := e.Group("/loans")
	loans.GET("", loanHandler.List)
	loans.GET("/:id", loanHandler.Get)
	loans.POST("", loanHandler.Create, authn, admin)
	loans.PUT("/toggle/:id", loanHandler.Toggle, authn, admin)
	loans.PUT("/:id", loanHandler.Update, authn, admin)
	loans.DELETE("/:id", loanHandler.Delete, authn, admin)

	// --- Applications ---
	apps := e.Group("/applications", authn)
	apps.POST("", appHandler.Submit)
	apps.GET("/my", appHandler.Mine)
	apps.GET("/admin/dashboard", appHandler.Dashboard, admin)
	apps.GET("", appHandler.List, admin)
	apps.GET("/:id", appHandler.Get, admin)
	apps.PUT("/:id", appHandler.UpdateStatus, admin)
	apps.DELETE("/:id", appHandler.Delete, admin)

	// --- Quotes and contact messages: public submit, admin triage ---
	quotes := e.Group("/quotes")
	quotes.POST("", quoteHandler.Submit)
	quotes.GET("", quoteHandler.List, authn, admin)
	quotes.PUT("/:id", quoteHandler.UpdateStatus, authn, admin)

	contact := e.Group("/contact")
	contact.POST("", contactHandler.Submit)
	contact.GET("", contactHandler.List, authn, admin)
	contact.DELETE("/:id", contactHandler.Delete, authn, admin)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler(serviceName)
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Pingers)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	return e
}
