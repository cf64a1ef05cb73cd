package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Renal37/orderdesk/internal/services"
	"github.com/Renal37/orderdesk/internal/storage"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config настройки сервера. Флаги задают значения по умолчанию,
// переменные окружения (в том числе из .env) их переопределяют.
type Config struct {
	Endpoint  string `env:"RUN_ADDRESS"`
	DataFile  string `env:"DATA_FILE"`
	DSN       string `env:"DATABASE_URI"`
	StaticDir string `env:"STATIC_DIR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"ENV" envDefault:"production"`

	AuthSecretKey      string `env:"AUTH_SECRET_KEY"`
	AdminPhone         string `env:"ADMIN_PHONE" envDefault:"8432464520"`
	RequireAuth        bool   `env:"REQUIRE_AUTH" envDefault:"true"`
	WriteQueueCapacity int    `env:"WRITE_QUEUE_CAPACITY" envDefault:"100"`

	generatedSecret bool
}

func generateRandomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Load разбирает флаги из args, затем .env и переменные окружения.
func Load(args []string) (Config, error) {
	cfg := Config{}

	flags := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	flags.StringVar(&cfg.Endpoint, "a", "localhost:3000", "address and port to run server")
	flags.StringVar(&cfg.DataFile, "f", storage.DefaultDataFile, "path to the JSON data file")
	flags.StringVar(&cfg.DSN, "d", "", "data source name for PostgreSQL storage")
	flags.StringVar(&cfg.StaticDir, "s", "", "directory with static site files")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.ParseEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.ensureSecret(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseEnv подгружает .env, если он есть, и применяет переменные окружения.
func (c *Config) ParseEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка чтения .env: %w", err)
	}

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if c.AdminPhone == "" {
		c.AdminPhone = services.DefaultAdminPhone
	}

	return nil
}

// ensureSecret подставляет ключ подписи токенов, если он не задан.
// В production ключ случайный, поэтому токены не переживают перезапуск.
func (c *Config) ensureSecret() error {
	if c.AuthSecretKey != "" {
		return nil
	}

	if c.Env != EnvProduction {
		c.AuthSecretKey = "development-key"
		return nil
	}

	secret, err := generateRandomString(32)
	if err != nil {
		return fmt.Errorf("не удалось сгенерировать ключ: %w", err)
	}
	c.AuthSecretKey = secret
	c.generatedSecret = true

	return nil
}

// SecretGenerated сообщает, что ключ подписи был сгенерирован при старте.
func (c Config) SecretGenerated() bool {
	return c.generatedSecret
}
