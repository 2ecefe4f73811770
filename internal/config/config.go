package config

import (
	"errors"
	"os"
	"strconv"
)

// Config carries the Cloudinary credentials plus the persistence defaults
// applied when an upload does not override them.
type Config struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string

	UploadHandlerPath string

	DefaultOrder     int
	DefaultPublished bool

	DatabaseURL string
	Port        string
	Language    string
}

// Load reads everything from the environment. Missing credentials are a hard
// error: the process must not come up half-configured.
func Load() (*Config, error) {
	cfg := &Config{
		CloudName:         os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:            os.Getenv("CLOUDINARY_API_KEY"),
		APISecret:         os.Getenv("CLOUDINARY_API_SECRET"),
		UploadPreset:      os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		UploadHandlerPath: os.Getenv("UPLOAD_HANDLER_PATH"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              os.Getenv("PORT"),
		Language:          os.Getenv("APP_LANGUAGE"),
		DefaultOrder:      999,
		DefaultPublished:  true,
	}

	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("missing Cloudinary credentials: check CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	if cfg.UploadHandlerPath == "" {
		cfg.UploadHandlerPath = "/api/cloudinary/upload-handler"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}

	if v := os.Getenv("MEDIA_DEFAULT_ORDER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.New("MEDIA_DEFAULT_ORDER must be a non-negative integer")
		}
		cfg.DefaultOrder = n
	}

	if v := os.Getenv("MEDIA_DEFAULT_PUBLISHED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("MEDIA_DEFAULT_PUBLISHED must be a boolean")
		}
		cfg.DefaultPublished = b
	}

	return cfg, nil
}
