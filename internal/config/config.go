package config

import (
	"time"

	"task-service/internal/infrastructure"
)

type Config struct {
	Addr           string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	TokenValidity  time.Duration
	SendGridAPIKey string
	MailSender     string

	RateLimitWindow      time.Duration
	RateLimitMaxRequests int
}

func Load() *Config {
	return &Config{
		Addr:           infrastructure.GetEnvAsString("ADDR", ":3000"),
		DatabaseDriver: infrastructure.GetEnvAsString("DB_DRIVER", "postgres"),
		DatabaseURL:    infrastructure.GetEnvAsString("DATABASE_URL", ""),
		JWTSecret:      infrastructure.GetEnvAsString("JWT_SECRET", ""),
		TokenValidity:  infrastructure.GetEnvAsDuration("TOKEN_VALIDITY", infrastructure.DefaultTokenValidity),
		SendGridAPIKey: infrastructure.GetEnvAsString("SENDGRID_API_KEY", ""),
		MailSender:     infrastructure.GetEnvAsString("MAIL_SENDER", ""),

		RateLimitWindow:      infrastructure.GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitMaxRequests: infrastructure.GetEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 10),
	}
}
