package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-api/internal/domain"
	"github.com/vladislavdragonenkov/orders-api/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders-api/internal/storage/postgres"
)

// Dependencies содержит хранилища, от которых зависит приложение.
type Dependencies struct {
	Repo        domain.OrderRepository
	Credentials domain.CredentialStore
	OutboxRepo  domain.OutboxRepository

	// Store заполнен только для postgres-драйвера.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies инициализирует хранилища согласно конфигурации.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		return newPostgresDependencies(ctx, cfg, logger)
	case StorageDriverMemory:
		return newMemoryDependencies(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

func newPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	store, err := postgres.OpenWithLimits(ctx, cfg.PostgresDSN, postgres.PoolLimits{
		MaxOpenConns: cfg.PostgresMaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if cfg.PostgresAutoMigrate {
		if err := store.MigrateUp(ctx, 0); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	credentials := postgres.NewCredentialRepository(store)
	if cfg.SeedUsername != "" && cfg.SeedPasswordHash != "" {
		if err := credentials.EnsureUser(ctx, domain.Credential{
			Username:     cfg.SeedUsername,
			PasswordHash: cfg.SeedPasswordHash,
		}); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed user: %w", err)
		}
	}

	logger.WithField("driver", StorageDriverPostgres).Info("хранилище инициализировано")
	return &Dependencies{
		Repo:        postgres.NewOrderRepository(store),
		Credentials: credentials,
		OutboxRepo:  postgres.NewOutboxRepository(store),
		Store:       store,
		Logger:      logger,
	}, nil
}

func newMemoryDependencies(cfg Config, logger *log.Entry) *Dependencies {
	var seed []domain.Credential
	if cfg.SeedUsername != "" && cfg.SeedPasswordHash != "" {
		seed = append(seed, domain.Credential{
			Username:     cfg.SeedUsername,
			PasswordHash: cfg.SeedPasswordHash,
		})
	}

	logger.WithField("driver", StorageDriverMemory).Info("хранилище инициализировано")
	return &Dependencies{
		Repo:        memory.NewOrderRepository(),
		Credentials: memory.NewCredentialStore(seed...),
		OutboxRepo:  memory.NewOutboxRepository(),
		Logger:      logger,
	}
}

// Close освобождает ресурсы хранилищ.
func (d *Dependencies) Close() {
	if d == nil || d.Store == nil {
		return
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.WithError(err).Warn("failed to close postgres store")
	}
}
