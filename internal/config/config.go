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
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	TeamPasscode           string
	AdminPasscode          string
	SessionTTL             time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	ThumbnailWidth         int
	UploadMaxMB            int
	DirectoryCacheTTL      time.Duration
	SettingsCacheTTL       time.Duration
	DraftTTL               time.Duration
	SeedEnabled            bool
	SeedToken              string
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
	v.SetEnvPrefix("HYGIEA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Hygiea API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "8h")
	v.SetDefault("cloudinary.folder", "hygiea/evidence")
	v.SetDefault("thumbnail.width", 400)
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("directory.cache_ttl", "60s")
	v.SetDefault("settings.cache_ttl", "5m")
	v.SetDefault("draft.ttl", "12h")

	sessionTTL, err := parseTTL(v, "session.ttl", "8h")
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	directoryTTL, err := parseTTL(v, "directory.cache_ttl", "60s")
	if err != nil {
		return Config{}, fmt.Errorf("invalid directory cache ttl: %w", err)
	}

	settingsTTL, err := parseTTL(v, "settings.cache_ttl", "5m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid settings cache ttl: %w", err)
	}

	draftTTL, err := parseTTL(v, "draft.ttl", "12h")
	if err != nil {
		return Config{}, fmt.Errorf("invalid draft ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		TeamPasscode:           v.GetString("passcode.team"),
		AdminPasscode:          v.GetString("passcode.admin"),
		SessionTTL:             sessionTTL,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		ThumbnailWidth:         v.GetInt("thumbnail.width"),
		UploadMaxMB:            v.GetInt("upload.max_mb"),
		DirectoryCacheTTL:      directoryTTL,
		SettingsCacheTTL:       settingsTTL,
		DraftTTL:               draftTTL,
		SeedEnabled:            v.GetBool("seed.enabled"),
		SeedToken:              v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.TeamPasscode == "" && cfg.AdminPasscode == "" {
		return Config{}, fmt.Errorf("at least one role passcode must be provided")
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}

	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = 400
	}

	return cfg, nil
}

func parseTTL(v *viper.Viper, key, fallback string) (time.Duration, error) {
	value := v.GetString(key)
	if value == "" {
		value = fallback
	}

	return time.ParseDuration(value)
}
