package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/horizonbank/banking-api/docs"
	"github.com/horizonbank/banking-api/internal/api/handler"
	"github.com/horizonbank/banking-api/internal/api/middleware"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// Deps carries the constructed services and clients the router wires up.
type Deps struct {
	Auth      ports.AuthService
	Link      ports.LinkService
	Banks     ports.BankService
	Transfers ports.TransferService
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("banking"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	linkHandler := handler.NewLinkHandler(deps.Link)
	bankHandler := handler.NewBankHandler(deps.Banks)
	transferHandler := handler.NewTransferHandler(deps.Transfers, deps.Banks)

	// --- Auth routes (no session required) ---
	e.POST("/v1/auth/sign-up", authHandler.SignUp)
	e.POST("/v1/auth/sign-in", authHandler.SignIn)
	e.GET("/v1/auth/me", authHandler.Me)
	e.POST("/v1/auth/logout", authHandler.Logout)

	// --- Session-scoped routes ---
	session := middleware.Session(deps.Auth)
	v1 := e.Group("/v1", session)
	v1.POST("/link/token", linkHandler.CreateToken)
	v1.POST("/link/exchange", linkHandler.Exchange)
	v1.GET("/banks", bankHandler.ListBanks)
	v1.GET("/banks/:id", bankHandler.GetBank)
	v1.GET("/accounts", bankHandler.ListAccounts)
	v1.GET("/accounts/:id", bankHandler.GetAccount)
	v1.POST("/transfers", transferHandler.Create)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
