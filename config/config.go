package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisVerifiedDB  int    `mapstructure:"REDIS_VERIFIED_DB"`
	RedisSweepLockDB int    `mapstructure:"REDIS_SWEEP_LOCK_DB"`
	RedisQueueDB     int    `mapstructure:"REDIS_QUEUE_DB"`

	// OTP configuration. OTPSecret keys the HMAC over issued codes and is
	// mandatory: verification fails closed without it.
	OTPSecret        string `mapstructure:"OTP_SECRET"`
	OTPExpiryMinutes int    `mapstructure:"OTP_EXPIRY_MINUTES"`

	// MSG91 SMS gateway.
	MSG91AuthKey              string `mapstructure:"MSG91_AUTH_KEY"`
	MSG91OTPTemplateID        string `mapstructure:"MSG91_TEMPLATE_ID"`
	MSG91ConfirmTemplateID    string `mapstructure:"MSG91_CONFIRM_TEMPLATE_ID"`
	MSG91ReminderTemplateID   string `mapstructure:"MSG91_REMINDER_TEMPLATE_ID"`
	MSG91MeetLinkTemplateID   string `mapstructure:"MSG91_MEETLINK_TEMPLATE_ID"`
	MSG91Reminder30TemplateID string `mapstructure:"MSG91_REMINDER30_TEMPLATE_ID"`
	DemoMeetingLink           string `mapstructure:"DEMO_MEETING_LINK"`

	// Shared secret for the cron sweep trigger.
	CronSecret string `mapstructure:"CRON_SECRET"`

	// Registration page influencer campaign links point at.
	RegistrationBaseURL string `mapstructure:"REGISTRATION_BASE_URL"`

	// Admin auth.
	AdminJWTSecret    string `mapstructure:"ADMIN_JWT_SECRET"`
	AdminJWTExpiresIn string `mapstructure:"ADMIN_JWT_EXPIRES_IN"`

	// Google Sheets mirroring (optional, best-effort).
	GoogleSheetID         string `mapstructure:"GOOGLE_SHEET_ID"`
	GoogleSheetRange      string `mapstructure:"GOOGLE_SHEET_RANGE"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "guidexpert")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_VERIFIED_DB", 1)
	viper.SetDefault("REDIS_SWEEP_LOCK_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 5)
	viper.SetDefault("GOOGLE_SHEET_RANGE", "Sheet1")
	viper.SetDefault("ADMIN_JWT_EXPIRES_IN", "24h")
	viper.SetDefault("DEMO_MEETING_LINK", "https://guidexpert.co.in/demo")
	viper.SetDefault("REGISTRATION_BASE_URL", "https://guidexpert.co.in/register")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OTP verification is a hard gate for the whole funnel; refuse to start
	// without the signing secret rather than run with verification broken.
	if AppConfig.OTPSecret == "" {
		log.Fatal("OTP_SECRET is not set; refusing to start")
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
