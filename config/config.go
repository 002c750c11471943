package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config là cấu hình runtime, đọc từ biến môi trường (và file .env nếu có)
type Config struct {
	Env      string `koanf:"env" validate:"required"`
	Port     string `koanf:"port" validate:"required"`
	LogLevel string `koanf:"log_level"`

	DatabaseURL         string `koanf:"database_url" validate:"required"`
	DatabaseAutoMigrate bool   `koanf:"database_auto_migrate"`

	RedisAddr     string        `koanf:"redis_addr"`
	RedisUser     string        `koanf:"redis_user"`
	RedisPassword string        `koanf:"redis_password"`
	RedisCacheTTL time.Duration `koanf:"redis_cache_ttl" validate:"gt=0"`

	AuthSecretKey       string `koanf:"auth_secret_key" validate:"required"`
	AuthTokenTTLMinutes int    `koanf:"auth_token_ttl_minutes" validate:"min=1"`

	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

func defaults() Config {
	return Config{
		Env:                 "dev",
		Port:                "8083",
		LogLevel:            "info",
		RedisCacheTTL:       10 * time.Minute,
		AuthTokenTTLMinutes: 60 * 24 * 3,
		CORSAllowedOrigins:  "*",
	}
}

// LoadEnv nạp file .env vào môi trường nếu tồn tại
func LoadEnv(files ...string) {
	// thiếu file .env không phải lỗi, dùng biến môi trường có sẵn
	_ = godotenv.Load(files...)
}

// Load builds the Config from the process environment on top of defaults and
// validates it.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AuthTokenTTLMinutes) * time.Minute
}

// AllowedOrigins tách CORS_ALLOWED_ORIGINS theo dấu phẩy
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
