package main

import (
	"log"

	"github.com/joho/godotenv"

	"task-service/internal/application/services"
	"task-service/internal/config"
	httpdelivery "task-service/internal/delivery/http"
	"task-service/internal/infrastructure"
	gormdb "task-service/internal/infrastructure/db/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := gormdb.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	userRepo := gormdb.NewUserRepository(db)
	taskRepo := gormdb.NewTaskRepository(db)

	jwtService := infrastructure.NewJWTService(cfg.JWTSecret, cfg.TokenValidity)
	avatarService := infrastructure.NewAvatarService()
	redisService := infrastructure.NewRedisService()
	rateLimiter := infrastructure.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMaxRequests)

	var mailer infrastructure.Mailer = infrastructure.NoopMailer{}
	if cfg.SendGridAPIKey != "" {
		mailer = infrastructure.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailSender)
	} else {
		log.Println("SENDGRID_API_KEY not set, outgoing mail disabled")
	}

	userService := services.NewUserService(userRepo, jwtService, avatarService, redisService, mailer, rateLimiter)
	taskService := services.NewTaskService(taskRepo)

	server := httpdelivery.NewServer(userService, taskService, userRepo, jwtService, redisService)

	log.Printf("server listening on %s", cfg.Addr)
	log.Fatal(server.Start(cfg.Addr))
}
