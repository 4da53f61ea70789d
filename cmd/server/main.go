package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Rafael-Rueda/academic-manager-api/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Rafael-Rueda/academic-manager-api/internal/auth"
	"github.com/Rafael-Rueda/academic-manager-api/internal/cache"
	"github.com/Rafael-Rueda/academic-manager-api/internal/config"
	"github.com/Rafael-Rueda/academic-manager-api/internal/db"
	"github.com/Rafael-Rueda/academic-manager-api/internal/handler"
	"github.com/Rafael-Rueda/academic-manager-api/internal/mailer"
	"github.com/Rafael-Rueda/academic-manager-api/internal/repository"
	"github.com/Rafael-Rueda/academic-manager-api/internal/router"
	"github.com/Rafael-Rueda/academic-manager-api/internal/service"
)

// @title Academic Manager API
// @version 1.0
// @description Course enrollment API with passwordless email-confirmation auth.
// @host localhost:3333
// @BasePath /
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

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: reset failed: %v", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	codeRepo := repository.NewConfirmationCodeRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)

	// Initialize auth and mail components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailerSvc, err := newMailer(cfg)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, codeRepo, jwtService, mailerSvc, cfg.FrontendURL)
	courseService := service.NewCourseService(courseRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)

	// Register routes
	router.Register(e, cfg, userRepo, authHandler, courseHandler)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// newMailer selects the mail transport from configuration. The dev driver
// logs instead of sending.
func newMailer(cfg *config.Config) (mailer.Service, error) {
	switch cfg.MailerDriver {
	case "mailersend":
		return mailer.NewMailerSend(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFrom)
	case "smtp":
		return mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom, cfg.SMTPUser, cfg.SMTPPassword), nil
	case "dev":
		return mailer.NewDevMailer(), nil
	default:
		return nil, fmt.Errorf("unknown MAILER_DRIVER %q", cfg.MailerDriver)
	}
}
