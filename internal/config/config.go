package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	LockMemory = "memory"
	LockRedis  = "redis"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	Store          string
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string

	LockBackend   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LockTTL       time.Duration

	DefaultLocale    string
	DiscordToken     string
	DiscordChannelID string
	LogLevel         zerolog.Level
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		Store:            strings.ToLower(getEnv("STORE", StorePostgres)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "migrations"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LockBackend:      strings.ToLower(getEnv("LOCK_BACKEND", LockMemory)),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "fr"),
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("config: REDIS_DB invalide: %w", err)
	}
	if cfg.LockTTL, err = time.ParseDuration(getEnv("LOCK_TTL", "5s")); err != nil {
		return nil, fmt.Errorf("config: LOCK_TTL invalide: %w", err)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL invalide: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

// DiscordEnabled indique si les notifications Discord sont configurées.
func (c *Config) DiscordEnabled() bool { return c.DiscordToken != "" }

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("config: JWT_SECRET est requis et ne peut pas être vide")
	}

	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Valeur par défaut utile en local lorsque DATABASE_URL n'est pas fournie.
			c.DatabaseURL = "postgres://localhost:5432/evenza?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORE doit valoir %q ou %q", StorePostgres, StoreMemory)
	}

	switch c.LockBackend {
	case LockMemory:
	case LockRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("config: REDIS_ADDR est requis avec LOCK_BACKEND=redis")
		}
		if c.LockTTL <= 0 {
			return fmt.Errorf("config: LOCK_TTL doit être positif")
		}
	default:
		return fmt.Errorf("config: LOCK_BACKEND doit valoir %q ou %q", LockMemory, LockRedis)
	}

	if c.DiscordToken != "" {
		if strings.TrimSpace(c.DiscordChannelID) == "" {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID est requis lorsque DISCORD_TOKEN est défini")
		}
		for _, r := range c.DiscordChannelID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: DISCORD_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
			}
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
