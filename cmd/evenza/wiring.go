package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"evenza/internal/config"
	"evenza/internal/infrastructure/database"
	"evenza/internal/infrastructure/lock"
	"evenza/internal/infrastructure/memory"
	"evenza/internal/ports/output"
)

type stores struct {
	events       output.EventRepository
	reservations output.ReservationRepository
	close        func()
}

// openStores connects the configured store. With migrate set, pending
// PostgreSQL migrations run first.
func openStores(ctx context.Context, cfg *config.Config, migrate bool) (*stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return &stores{
			events:       memory.NewEventStore(),
			reservations: memory.NewReservationStore(),
			close:        func() {},
		}, nil
	}

	if migrate {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, err
		}
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &stores{
		events:       database.NewEventRepository(pool),
		reservations: database.NewReservationRepository(pool),
		close:        pool.Close,
	}, nil
}

func newLocker(ctx context.Context, cfg *config.Config) (output.Locker, func(), error) {
	if cfg.LockBackend != config.LockRedis {
		return lock.NewKeyedMutex(), func() {}, nil
	}
	client, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("lock backend: %w", err)
	}
	return lock.NewRedisLocker(client, cfg.LockTTL), func() { _ = client.Close() }, nil
}
