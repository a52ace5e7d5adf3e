package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string `validate:"required"`
	DBDSN    string `validate:"required"`
	LogLevel slog.Level

	// PublicBaseURL, when set, is used to build absolute page URLs instead
	// of the request's Host header.
	PublicBaseURL string `validate:"omitempty,url"`

	CartCookieName   string `validate:"required"`
	CartCookieSecret string `validate:"required,min=16"`
	FlashSecret      string `validate:"required,min=16"`
	CookieSecure     bool

	Store   Store
	Storage Storage
}

// Store describes the shop for default SEO tags.
type Store struct {
	Name        string `validate:"required"`
	Description string
	Lang        string `validate:"omitempty,bcp47_language_tag"`
	TwitterSite string
}

// Storage selects where product images are stored.
type Storage struct {
	Driver string `validate:"oneof=local s3"`

	LocalDir       string `validate:"required_if=Driver local"`
	LocalURLPrefix string `validate:"required_if=Driver local"`

	S3Region        string `validate:"required_if=Driver s3"`
	S3Bucket        string `validate:"required_if=Driver s3"`
	S3Prefix        string
	S3PublicBaseURL string `validate:"required_if=Driver s3"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	// prod uses real env vars; a missing .env is fine
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Addr:             env("HTTP_ADDR", ":8080"),
		DBDSN:            env("DB_DSN", ""),
		PublicBaseURL:    strings.TrimRight(env("PUBLIC_BASE_URL", ""), "/"),
		CartCookieName:   env("CART_COOKIE_NAME", "hydrogen_cart"),
		CartCookieSecret: env("CART_COOKIE_SECRET", ""),
		FlashSecret:      env("FLASH_SECRET", ""),
		Store: Store{
			Name:        env("STORE_NAME", "Hydrogen"),
			Description: env("STORE_DESCRIPTION", ""),
			Lang:        env("STORE_LANG", "en"),
			TwitterSite: env("STORE_TWITTER_SITE", ""),
		},
		Storage: Storage{
			Driver:          env("STORAGE_DRIVER", "local"),
			LocalDir:        env("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  env("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:        env("S3_REGION", ""),
			S3Bucket:        env("S3_BUCKET", ""),
			S3Prefix:        env("S3_PREFIX", "uploads"),
			S3PublicBaseURL: strings.TrimRight(env("S3_PUBLIC_BASE_URL", ""), "/"),
		},
	}

	secure, err := strconv.ParseBool(env("COOKIE_SECURE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("config: COOKIE_SECURE: %w", err)
	}
	cfg.CookieSecure = secure

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
