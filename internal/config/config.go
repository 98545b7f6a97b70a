package config

import (
	"os"
)

type Config struct {
	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	HTTP_PORT string

	// Token signing. Access and refresh tokens use distinct secrets,
	// TTLs are duration strings like "1h", "15m", "7d".
	ACCESS_TOKEN_SECRET  string
	REFRESH_TOKEN_SECRET string
	ACCESS_TOKEN_TTL     string
	REFRESH_TOKEN_TTL    string

	// Google OAuth
	GOOGLE_CLIENT_ID     string
	GOOGLE_CLIENT_SECRET string
	GOOGLE_CALLBACK_URL  string
	STATE_SECRET         string

	// SMTP for welcome / password-reset mail
	SMTP_HOST     string
	SMTP_PORT     string
	SMTP_USER     string
	SMTP_PASSWORD string

	// Base URL used to build password-reset links in emails
	APP_BASE_URL string

	// Redis, used by the distributed rate limiter when set
	REDIS_ADDR     string
	REDIS_PASSWORD string

	// Otel
	OTEL_EXPORTER_OTLP_ENDPOINT string
}

func ReadConfig() *Config {
	return &Config{
		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		HTTP_PORT: GetEnvOrDefault("HTTP_PORT", "6060"),

		ACCESS_TOKEN_SECRET:  os.Getenv("ACCESS_TOKEN_SECRET"),
		REFRESH_TOKEN_SECRET: os.Getenv("REFRESH_TOKEN_SECRET"),
		ACCESS_TOKEN_TTL:     GetEnvOrDefault("ACCESS_TOKEN_TTL", "1h"),
		REFRESH_TOKEN_TTL:    GetEnvOrDefault("REFRESH_TOKEN_TTL", "7d"),

		GOOGLE_CLIENT_ID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GOOGLE_CLIENT_SECRET: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GOOGLE_CALLBACK_URL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		STATE_SECRET:         os.Getenv("STATE_SECRET"),

		SMTP_HOST:     os.Getenv("SMTP_HOST"),
		SMTP_PORT:     os.Getenv("SMTP_PORT"),
		SMTP_USER:     os.Getenv("SMTP_USER"),
		SMTP_PASSWORD: os.Getenv("SMTP_PASSWORD"),

		APP_BASE_URL: GetEnvOrDefault("APP_BASE_URL", "http://localhost:3000"),

		REDIS_ADDR:     os.Getenv("REDIS_ADDR"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
