package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Google API access. The credentials file carries the delegated OAuth
	// client used for Gmail and Calendar; token refresh happens inside the
	// client library, not here.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GeminiAPIKey          string `mapstructure:"GEMINI_API_KEY"`
	PubSubTopic           string `mapstructure:"PUBSUB_TOPIC"`

	// Negotiation defaults.
	MeetingLabel       string `mapstructure:"MEETING_LABEL"`
	TimeZone           string `mapstructure:"TIME_ZONE"`
	DayStartHour       int    `mapstructure:"DAY_START_HOUR"`
	DayEndHour         int    `mapstructure:"DAY_END_HOUR"`
	WindowDays         int    `mapstructure:"WINDOW_DAYS"`
	DefaultDurationMin int    `mapstructure:"DEFAULT_DURATION_MIN"`
	MaxProposedSlots   int    `mapstructure:"MAX_PROPOSED_SLOTS"`
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
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("PUBSUB_TOPIC", "")
	viper.SetDefault("MEETING_LABEL", "MeetingScheduler")
	viper.SetDefault("TIME_ZONE", "Pacific/Auckland")
	viper.SetDefault("DAY_START_HOUR", 9)
	viper.SetDefault("DAY_END_HOUR", 17)
	viper.SetDefault("WINDOW_DAYS", 7)
	viper.SetDefault("DEFAULT_DURATION_MIN", 30)
	viper.SetDefault("MAX_PROPOSED_SLOTS", 3)

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
