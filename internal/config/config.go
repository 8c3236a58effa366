package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the application.
// Values come from environment variables with sensible local defaults.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	UploadDir   string
	MaxUploadMB int
	BaseURL     string

	SMSUsername string
	SMSAPIKey   string
	SMSSenderID string
	SMSBaseURL  string

	// Optional out-of-band admin account, seeded at startup if absent.
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load reads configuration from the environment via Viper.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=foodnova port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 30)
	viper.SetDefault("REFRESH_TOKEN_TTL_MINUTES", 7*24*60)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("MAX_UPLOAD_MB", 5)
	viper.SetDefault("BASE_URL", "")
	viper.SetDefault("SMS_BASE_URL", "https://api.africastalking.com/version1/messaging")
	viper.SetDefault("SMS_SENDER_ID", "FoodNova")
	viper.SetDefault("ADMIN_NAME", "FoodNova Admin")
	viper.AutomaticEnv()

	return Config{
		Port:            viper.GetString("APP_PORT"),
		DatabaseDSN:     viper.GetString("DATABASE_DSN"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		AccessTokenTTL:  time.Duration(viper.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
		RefreshTokenTTL: time.Duration(viper.GetInt("REFRESH_TOKEN_TTL_MINUTES")) * time.Minute,
		UploadDir:       viper.GetString("UPLOAD_DIR"),
		MaxUploadMB:     viper.GetInt("MAX_UPLOAD_MB"),
		BaseURL:         viper.GetString("BASE_URL"),
		SMSUsername:     viper.GetString("SMS_USERNAME"),
		SMSAPIKey:       viper.GetString("SMS_API_KEY"),
		SMSSenderID:     viper.GetString("SMS_SENDER_ID"),
		SMSBaseURL:      viper.GetString("SMS_BASE_URL"),
		AdminEmail:      viper.GetString("ADMIN_EMAIL"),
		AdminPassword:   viper.GetString("ADMIN_PASSWORD"),
		AdminName:       viper.GetString("ADMIN_NAME"),
	}
}
