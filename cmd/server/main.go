package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/logger"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
	"portfolio/internal/upload"
	"portfolio/internal/validation"
)

// @title Portfolio API
// @version 1.0
// @description Portfolio site API: published projects, testimonial submission and moderation, contact form and an admin area behind JWT authentication.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		zl.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		zl.Warn("RESET_DB set, dropping all tables")
		db.Reset(gormDB, zl)
	}
	if err := db.Migrate(gormDB); err != nil {
		zl.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		zl.Warn("redis unavailable, running without cache and token revocation", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancelPing()

	// Repositories
	adminRepo := repository.NewAdminRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	testimonialRepo := repository.NewTestimonialRepository(gormDB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	guard := auth.NewGuard(jwtService, adminRepo, tokenStore)

	// Services
	uploads := upload.NewStore(cfg.PublicDir, cfg.UploadMaxBytes)
	validator := validation.New()
	authService := service.NewAuthService(adminRepo, jwtService, tokenStore)
	projectService := service.NewProjectService(projectRepo, uploads, validator, cacheClient, cfg.PublicCacheTTL)
	testimonialService := service.NewTestimonialService(testimonialRepo, uploads, validator, cacheClient, cfg.PublicCacheTTL)
	contactService := service.NewContactService(validator, zl)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := authService.EnsureAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
	cancelBoot()
	if err != nil {
		zl.Fatal("bootstrap admin", zap.Error(err))
	}
	if created {
		zl.Info("created initial admin account", zap.String("email", cfg.AdminEmail))
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, zl, guard, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Project:     handler.NewProjectHandler(projectService),
		Testimonial: handler.NewTestimonialHandler(testimonialService),
		Contact:     handler.NewContactHandler(contactService),
		System:      handler.NewSystemHandler(cfg.SiteURL),
	})

	zl.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		zl.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	// SwaggerHost may already include a scheme.
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
