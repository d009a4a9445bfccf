package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/squashd/bugtracker/internal/api/handler"
	"github.com/squashd/bugtracker/internal/api/middleware"
	"github.com/squashd/bugtracker/internal/core/service"
	redisdb "github.com/squashd/bugtracker/internal/infrastructure/db/redis"
	"github.com/squashd/bugtracker/internal/infrastructure/db/sqlite"
	"github.com/squashd/bugtracker/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = newRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bugtracker"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	bugRepo := sqlite.NewBugRepository(db)
	revoker := redisdb.NewSessionRevoker(rdb)
	sessions := service.NewSessionManager(jwtSecret, 0)
	authService := service.NewAuthService(userRepo, sessions, revoker, log)
	bugService := service.NewBugService(bugRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessions.TTL())
	bugHandler := handler.NewBugHandler(bugService, authService)

	// Page flows redirect anonymous requests to /login; API flows get 401.
	pageAuth := middleware.Auth(sessions, revoker, true)
	apiAuth := middleware.Auth(sessions, revoker, false)

	// --- Public routes ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/sign-up", authHandler.SignUpPage)
	e.POST("/sign-up", authHandler.SignUp)

	// --- Authenticated page routes ---
	e.GET("/", bugHandler.Index, pageAuth)
	e.GET("/logout", authHandler.Logout, pageAuth)
	e.POST("/logout", authHandler.Logout, pageAuth)
	e.GET("/account-settings", authHandler.AccountSettings, pageAuth)
	e.POST("/update-username", authHandler.UpdateUsername, pageAuth)
	e.POST("/update-password", authHandler.UpdatePassword, pageAuth)
	e.POST("/delete-account", authHandler.DeleteAccountPage, pageAuth)
	e.POST("/confirm-delete", authHandler.ConfirmDelete, pageAuth)

	// --- Authenticated JSON routes ---
	e.GET("/json", bugHandler.ListJSON, apiAuth)
	e.POST("/bugs", bugHandler.Create, apiAuth)
	e.PUT("/bugs/:id", bugHandler.Update, apiAuth)
	e.DELETE("/bugs/:id", bugHandler.Delete, apiAuth)
	e.GET("/search", bugHandler.Search, apiAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
