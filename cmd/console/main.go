// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/cache"
	"github.com/learnsphere/admin-console/internal/config"
	"github.com/learnsphere/admin-console/internal/handler"
	"github.com/learnsphere/admin-console/internal/imaging"
	"github.com/learnsphere/admin-console/internal/logging"
	"github.com/learnsphere/admin-console/internal/middleware"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/scheduler"
	"github.com/learnsphere/admin-console/internal/session"
	"github.com/learnsphere/admin-console/internal/store"
	"github.com/learnsphere/admin-console/internal/version"
	"github.com/learnsphere/admin-console/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List       http.HandlerFunc
	NewForm    http.HandlerFunc
	Create     http.HandlerFunc
	EditForm   http.HandlerFunc
	Update     http.HandlerFunc
	DeleteForm http.HandlerFunc
	Delete     http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, GET /new, POST /, GET /{id}/edit, PUT /{id}, POST /{id},
// GET /{id}/delete (confirmation page), POST /{id}/delete
func registerCRUD(r chi.Router, base, baseID string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID+handler.RouteSuffixEdit, h.EditForm)
	r.Put(baseID, h.Update)
	r.Post(baseID, h.Update) // HTML forms can't send PUT
	r.Get(baseID+handler.RouteSuffixDelete, h.DeleteForm)
	r.Post(baseID+handler.RouteSuffixDelete, h.Delete)
}

// registerListDelete registers routes for resources managed elsewhere that
// the console only lists and removes.
func registerListDelete(r chi.Router, base, baseIDDelete string, list, deleteForm, del http.HandlerFunc) {
	r.Get(base, list)
	r.Get(baseIDDelete, deleteForm)
	r.Post(baseIDDelete, del)
}

// registerSettingsRoutes registers a settings page with Get, Put, and Post (for HTML forms).
func registerSettingsRoutes(r chi.Router, route string, get, update http.HandlerFunc) {
	r.Get(route, get)
	r.Put(route, update)
	r.Post(route, update) // HTML forms can't send PUT
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "LearnSphere Admin Console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_API_BASE_URL     Backend REST API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_DB_PATH          SQLite database path (default: ./data/console.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_REDIS_URL        Redis URL for distributed picker caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CONSOLE_CACHE_TTL        Picker cache TTL in seconds (default: 300)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("console %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create version info from build-time injected values
	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	slog.Info("starting admin console",
		"version", versionInfo.Version,
		"commit", versionInfo.GitCommit,
	)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize local database (sessions and event log)
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations completed")

	// Upgrade the logger so warnings and errors also land in the event log
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize backend API client; the bearer token comes from the
	// caller's session, so one client serves all signed-in admins.
	apiClient := api.New(cfg.APIBaseURL, middleware.NewSessionTokenProvider(sessionManager))
	slog.Info("backend API client initialized", "base_url", cfg.APIBaseURL)

	// Initialize picker cache (category and sub-category dropdown feeds)
	cacheConfig := cache.CacheConfig{
		Type:             "memory",
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:          cfg.CacheMaxSize,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}
	if cfg.UseRedisCache() {
		cacheConfig.Type = "redis"
	}
	cacheResult, err := cache.NewCacheWithInfo(cacheConfig)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	switch {
	case cacheResult.BackendType == cache.CacheBackendRedis:
		slog.Info("picker cache initialized", "backend", "redis", "url", cache.SanitizeRedisURL(cfg.RedisURL))
	case cacheResult.IsFallback:
		slog.Warn("picker cache initialized", "backend", "memory", "note", "Redis unavailable, using fallback")
	default:
		slog.Info("picker cache initialized", "backend", "memory")
	}
	pickers := cache.NewPickers(cacheResult.Cache, apiClient, cacheConfig.DefaultTTL, logger)

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Initialize and start scheduler (picker refresh, event log pruning)
	sched := scheduler.New(db, logger).
		WithPickers(pickers).
		WithEventRetention(time.Duration(cfg.EventRetentionDays) * 24 * time.Hour)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Initialize login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Initialize public rate limiter for auth routes (defense-in-depth)
	// 10 requests per second with burst of 20 per IP
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// CSRF protection middleware
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Image processor for logo and cover uploads
	processor := imaging.NewProcessor()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(apiClient, renderer, sessionManager, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(apiClient, renderer)
	courseHandler := handler.NewCourseHandler(apiClient, renderer, pickers)
	categoryHandler := handler.NewCategoryHandler(apiClient, renderer, pickers)
	userHandler := handler.NewUserHandler(apiClient, renderer)
	templateHandler := handler.NewTemplateHandler(apiClient, renderer)
	billingHandler := handler.NewBillingHandler(renderer)
	settingsHandler := handler.NewSettingsHandler(apiClient, renderer, processor)
	profileHandler := handler.NewProfileHandler(apiClient, renderer, sessionManager)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout

	// Security headers middleware (CSP, HSTS, X-Frame-Options, etc.)
	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	// Request path middleware for logging context
	r.Use(middleware.RequestPath)

	r.Use(sessionManager.LoadAndSave)

	// Auth routes (public, with CSRF and rate limiting)
	// Defense-in-depth: publicRateLimiter (10 req/s) + loginProtection (0.5 req/s on POST + account lockout)
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Console routes (protected with CSRF)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))

		// Dashboard
		r.Get(handler.RouteRoot, dashboardHandler.Dashboard)

		// Course management routes
		registerCRUD(r, handler.RouteCourses, handler.RouteCoursesID, crudHandlers{
			List: courseHandler.List, NewForm: courseHandler.NewForm, Create: courseHandler.Create,
			EditForm: courseHandler.EditForm, Update: courseHandler.Update,
			DeleteForm: courseHandler.DeleteForm, Delete: courseHandler.Delete,
		})
		r.Get(handler.RouteCoursesID, courseHandler.View)

		// Category and sub-category routes (created by instructors on the
		// backend; the console lists and removes)
		registerListDelete(r, handler.RouteCategories, handler.RouteCategoriesIDDelete,
			categoryHandler.List, categoryHandler.DeleteForm, categoryHandler.Delete)
		registerListDelete(r, handler.RouteSubCategories, handler.RouteSubCategoriesIDDelete,
			categoryHandler.ListSub, categoryHandler.DeleteSubForm, categoryHandler.DeleteSub)

		// User management routes
		registerListDelete(r, handler.RouteUsers, handler.RouteUsersUIDDelete,
			userHandler.List, userHandler.DeleteForm, userHandler.Delete)

		// Certificate template management routes
		registerCRUD(r, handler.RouteTemplates, handler.RouteTemplatesID, crudHandlers{
			List: templateHandler.List, NewForm: templateHandler.NewForm, Create: templateHandler.Create,
			EditForm: templateHandler.EditForm, Update: templateHandler.Update,
			DeleteForm: templateHandler.DeleteForm, Delete: templateHandler.Delete,
		})

		// Billing report routes
		r.Get(handler.RoutePayments, billingHandler.Payments)
		r.Get(handler.RouteOrders, billingHandler.Orders)

		// Site settings and logo routes
		r.Get(handler.RouteLogo, settingsHandler.LogoForm)
		r.Post(handler.RouteLogo, settingsHandler.UploadLogo)
		registerSettingsRoutes(r, handler.RouteSettings, settingsHandler.EditForm, settingsHandler.Update)

		// Profile routes
		r.Get(handler.RoutePassword, profileHandler.PasswordForm)
		r.Post(handler.RoutePassword, profileHandler.ChangePassword)
		registerSettingsRoutes(r, handler.RouteProfile, profileHandler.EditForm, profileHandler.Update)
	})

	// Static file serving
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	// Static assets: cache for 1 year (31536000 seconds)
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/dist/*", staticHandler)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
