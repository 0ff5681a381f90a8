package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	NATSURL             string
	JWTSecret           string
	JWTTTL              time.Duration
	FeedCacheTTL        time.Duration
	UnreadCacheTTL      time.Duration
	NotificationLimit   int
	PollInterval        time.Duration
	UploadMaxSizeMB     int
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	OpenAIAPIKey        string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STOCKROOM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Stockroom API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("feed.cache_ttl", "45s")
	v.SetDefault("unread.cache_ttl", "30s")
	v.SetDefault("notification.limit", 20)
	v.SetDefault("poll.interval", "30s")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("cloudinary.folder", "stockroom/products")

	jwtTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	feedTTL, err := time.ParseDuration(v.GetString("feed.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid feed cache ttl: %w", err)
	}

	unreadTTL, err := time.ParseDuration(v.GetString("unread.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid unread cache ttl: %w", err)
	}

	pollInterval, err := time.ParseDuration(v.GetString("poll.interval"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid poll interval: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		NATSURL:             v.GetString("nats.url"),
		JWTSecret:           v.GetString("jwt.secret"),
		JWTTTL:              jwtTTL,
		FeedCacheTTL:        feedTTL,
		UnreadCacheTTL:      unreadTTL,
		NotificationLimit:   v.GetInt("notification.limit"),
		PollInterval:        pollInterval,
		UploadMaxSizeMB:     v.GetInt("upload.max_size_mb"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		OpenAIAPIKey:        v.GetString("openai_api_key"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.NotificationLimit <= 0 || cfg.NotificationLimit > 100 {
		cfg.NotificationLimit = 20
	}

	return cfg, nil
}
