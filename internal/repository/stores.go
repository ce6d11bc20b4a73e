package repository

import (
	"context"
	"fmt"

	"calculators/internal/common/config"
	"calculators/internal/common/database"
)

// Stores bundles the backends selected by configuration.
type Stores struct {
	Profiles     ProfileStore
	Quotes       QuoteStore
	Observations ObservationLog

	closers []func() error
	checks  []func(context.Context) error
}

// Open builds the stores named in cfg.Store. Memory backends need no connection;
// postgres and redis clients are created lazily and shared.
func Open(cfg *config.Config) (*Stores, error) {
	s := &Stores{}

	switch cfg.Store.Profiles {
	case config.BackendPostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pg.Close)
		s.checks = append(s.checks, pg.Ping, pg.EnsureSchema)
		s.Profiles = NewProfilePostgresStore(pg)
	default:
		s.Profiles = NewProfileMemoryStore()
	}

	var rdb *database.RedisClient
	redisClient := func() *database.RedisClient {
		if rdb == nil {
			rdb = database.NewRedis(cfg.Database.Redis, cfg.Store.KeyPrefix)
			s.closers = append(s.closers, rdb.Close)
			s.checks = append(s.checks, rdb.Ping)
		}
		return rdb
	}

	switch cfg.Store.Quotes {
	case config.BackendRedis:
		s.Quotes = NewQuoteRedisStore(redisClient(), config.GetDuration(cfg.Quote.TTL))
	default:
		s.Quotes = NewQuoteMemoryStore()
	}

	switch cfg.Store.Observations {
	case config.BackendRedis:
		s.Observations = NewObservationRedisLog(redisClient())
	default:
		s.Observations = NewObservationMemoryLog()
	}

	return s, nil
}

// Ping checks every connected backend and creates the profile table when it is
// missing. Memory-only stores always succeed.
func (s *Stores) Ping(ctx context.Context) error {
	for _, check := range s.checks {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases any backend connections.
func (s *Stores) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close store: %w", err)
		}
	}
	return firstErr
}
