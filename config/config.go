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
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Calendar defaults, overridable per session.
	CalendarStartTime    string `mapstructure:"CALENDAR_START_TIME"`
	CalendarEndTime      string `mapstructure:"CALENDAR_END_TIME"`
	CalendarInterval     int    `mapstructure:"CALENDAR_INTERVAL"`
	CalendarTimezone     string `mapstructure:"CALENDAR_TIMEZONE"`
	CalendarStrictDecode bool   `mapstructure:"CALENDAR_STRICT_DECODE"`

	SessionTTLMinutes     int  `mapstructure:"SESSION_TTL_MINUTES"`
	AsyncSave             bool `mapstructure:"ASYNC_SAVE"`
	SaveWorkerConcurrency int  `mapstructure:"SAVE_WORKER_CONCURRENCY"`
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
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "availcal")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("CALENDAR_START_TIME", "8:00")
	viper.SetDefault("CALENDAR_END_TIME", "20:00")
	viper.SetDefault("CALENDAR_INTERVAL", 60)
	viper.SetDefault("CALENDAR_TIMEZONE", "UTC")
	viper.SetDefault("CALENDAR_STRICT_DECODE", true)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("ASYNC_SAVE", true)
	viper.SetDefault("SAVE_WORKER_CONCURRENCY", 5)

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
