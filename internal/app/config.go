package app

import (
	"errors"
	"fmt"
	"time"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес основного API.
	HTTPAddr string
	// MetricsAddr — адрес для /metrics и health-проб.
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool
	// PostgresMaxConns — жёсткая граница пула подключений.
	PostgresMaxConns int

	// JWTSecret — секрет подписи токенов. Обязателен: без него сервис
	// не стартует, в коде секрет не хранится.
	JWTSecret string
	TokenTTL  time.Duration

	// SeedUsername/SeedPasswordHash — учётная запись, добавляемая на старте.
	// Хеш — bcrypt; сам пароль в конфигурации не появляется.
	SeedUsername     string
	SeedPasswordHash string

	// KafkaBrokers — список брокеров; пустой список выключает публикацию событий.
	KafkaBrokers []string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
}

// DefaultConfig возвращает базовые настройки.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		PostgresMaxConns:    10,
		TokenTTL:            15 * time.Minute,
		OutboxPollInterval:  time.Second,
		OutboxBatchSize:     100,
		OutboxMaxAttempts:   3,
		OutboxRetryDelay:    50 * time.Millisecond,
	}
}

// Validate проверяет конфигурацию перед запуском.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt signing secret is required (ORDERS_JWT_SECRET)")
	}
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres dsn is required for postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %s", c.StorageDriver)
	}
	return nil
}
