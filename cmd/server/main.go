package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "lumenportal/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lumenportal/internal/audit"
	"lumenportal/internal/auth"
	"lumenportal/internal/cache"
	"lumenportal/internal/config"
	"lumenportal/internal/db"
	"lumenportal/internal/guard"
	"lumenportal/internal/handler"
	"lumenportal/internal/model"
	"lumenportal/internal/repository"
	"lumenportal/internal/router"
	"lumenportal/internal/service"
)

const (
	defaultAdminName     = "Admin"
	defaultAdminEmail    = "admin@local"
	defaultAdminPassword = "Admin"
	defaultAdminSector   = "Admin"
)

// @title Lumen Portal Auth API
// @version 1.0
// @description Authentication and user-management service for the corporate portal: JWT sessions, role-based access and an append-only audit trail.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.LogEntry{},
		&model.UserAuditLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)

	jwtService, err := auth.NewJWTService(
		cfg.JWTSecret,
		cfg.JWTAlgorithm,
		cfg.JWTIssuer,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
	)
	if err != nil {
		log.Fatalf("jwt init: %v", err)
	}

	recorder := audit.NewRecorder(auditRepo, jwtService)
	authService := service.NewAuthService(userRepo, jwtService, recorder, cacheClient)
	auditService := service.NewAuditService(auditRepo, authService)

	if err := ensureDefaultAdmin(context.Background(), userRepo); err != nil {
		log.Fatalf("default admin: %v", err)
	}

	g := guard.New(authService)
	authHandler := handler.NewAuthHandler(authService, jwtService.TTL())
	userHandler := handler.NewUserHandler(authService)
	auditHandler := handler.NewAuditHandler(auditService)
	pageHandler := handler.NewPageHandler()

	router.Register(e, cfg, jwtService, g, authHandler, userHandler, auditHandler, pageHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// ensureDefaultAdmin seeds the bootstrap administrator when the store has no
// admin at all, so the at-least-one-admin floor holds from the first start.
func ensureDefaultAdmin(ctx context.Context, users repository.UserRepository) error {
	admins, err := users.CountByLevel(ctx, model.LevelAdmin)
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	log.Printf("no administrator found, creating default admin %q", defaultAdminEmail)
	return users.Create(ctx, &model.User{
		Name:         defaultAdminName,
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		Level:        model.LevelAdmin,
		Sector:       defaultAdminSector,
	})
}
