package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/schoolvote/internal/adapters/cache/rediscache"
	"github.com/vncsmyrnk/schoolvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/schoolvote/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/schoolvote/internal/config"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
	"github.com/vncsmyrnk/schoolvote/internal/core/services"
)

const redisPingAttempts = 5

type Dependencies struct {
	Elections       ports.ElectionRepository
	Candidates      ports.CandidateRepository
	Ballots         ports.BallotStore
	Cache           ports.TallyCache
	Clock           ports.Clock
	EnforceSchedule bool
	Logger          *slog.Logger
}

type Module struct {
	Registry *services.ElectionRegistry
	Roster   *services.CandidateRoster
	Tally    *services.TallyEngine
	Service  *services.ElectionService
	Schedule *services.ScheduleService
}

func NewModule(deps Dependencies) Module {
	clock := deps.Clock
	if clock == nil {
		clock = services.SystemClock{}
	}

	registry := services.NewElectionRegistry(deps.Elections, clock)
	roster := services.NewCandidateRoster(deps.Candidates, clock)
	tally := services.NewTallyEngine(registry, roster, deps.Ballots, deps.Cache, clock, deps.Logger)
	service := services.NewElectionService(registry, roster, deps.Ballots, tally, clock, services.ElectionServiceOptions{
		EnforceSchedule: deps.EnforceSchedule,
		Logger:          deps.Logger,
	})

	return Module{
		Registry: registry,
		Roster:   roster,
		Tally:    tally,
		Service:  service,
		Schedule: services.NewScheduleService(registry, service, clock, deps.Logger),
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	return NewModule(Dependencies{
		Elections:  store,
		Candidates: store,
		Ballots:    store,
		Cache:      memory.NewTallyCache(),
		Logger:     logger,
	})
}

// Open builds the module on the storage selected by cfg. SQL backends are
// migrated on open. The returned close function releases every connection.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Module, func() error, error) {
	deps := Dependencies{
		EnforceSchedule: cfg.CloseOnSchedule,
		Logger:          logger,
	}
	var closers []io.Closer

	switch cfg.DatabaseType {
	case "memory":
		store := memory.NewStore()
		deps.Elections, deps.Candidates, deps.Ballots = store, store, store
		deps.Cache = memory.NewTallyCache()
	default:
		db, dialect, err := OpenDatabase(ctx, cfg)
		if err != nil {
			return Module{}, nil, err
		}
		closers = append(closers, db)

		if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
			db.Close()
			return Module{}, nil, err
		}
		deps.Elections = sqlstore.NewElectionRepository(db, dialect)
		deps.Candidates = sqlstore.NewCandidateRepository(db, dialect)
		deps.Ballots = sqlstore.NewBallotRepository(db, dialect)
		logger.Info("database ready", "type", dialect.Name)
	}

	if cfg.RedisURL != "" {
		client, err := OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			closeAll(closers)
			return Module{}, nil, err
		}
		closers = append(closers, client)
		deps.Cache = rediscache.NewTallyCache(client, cfg.TallyCacheTTL)
		logger.Info("tally cache ready", "backend", "redis", "ttl", cfg.TallyCacheTTL)
	}

	return NewModule(deps), func() error { return closeAll(closers) }, nil
}

func OpenDatabase(ctx context.Context, cfg config.Config) (*sql.DB, sqlstore.Dialect, error) {
	dialect, err := sqlstore.DialectFor(cfg.DatabaseType)
	if err != nil {
		return nil, sqlstore.Dialect{}, err
	}
	db, err := sqlstore.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, sqlstore.Dialect{}, err
	}
	return db, dialect, nil
}

func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ping := func() error {
		return client.Ping(ctx).Err()
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), redisPingAttempts), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewLogger returns the JSON logger used by every binary.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func closeAll(closers []io.Closer) error {
	var firstErr error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
