package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort      string `mapstructure:"APP_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	Env          string `mapstructure:"ENV"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Payment gateway.
	PaymentGateway string `mapstructure:"PAYMENT_GATEWAY"`
	StripeKey      string `mapstructure:"STRIPE_KEY"`
	Currency       string `mapstructure:"CURRENCY"`

	// Platform pricing knobs (minor currency units unless noted).
	BookingFee           int64   `mapstructure:"BOOKING_FEE"`
	ServiceFee           int64   `mapstructure:"SERVICE_FEE"`
	SpecialtyTaskPrice   int64   `mapstructure:"SPECIALTY_TASK_PRICE"`
	MinimumBookingAmount int64   `mapstructure:"MINIMUM_BOOKING_AMOUNT"`
	WeekendMultiplier    float64 `mapstructure:"WEEKEND_MULTIPLIER"`
	HolidayMultiplier    float64 `mapstructure:"HOLIDAY_MULTIPLIER"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "zela")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("PAYMENT_GATEWAY", "mock")
	viper.SetDefault("CURRENCY", "AOA")
	viper.SetDefault("BOOKING_FEE", 500)
	viper.SetDefault("SERVICE_FEE", 0)
	viper.SetDefault("SPECIALTY_TASK_PRICE", 3000)
	viper.SetDefault("MINIMUM_BOOKING_AMOUNT", 5000)
	viper.SetDefault("WEEKEND_MULTIPLIER", 1.2)
	viper.SetDefault("HOLIDAY_MULTIPLIER", 1.5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
