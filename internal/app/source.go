// Package app wires configuration into the record store shared by the
// HTTP server and the terminal client.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedash/internal/config"
	dbPostgres "github.com/kailas-cloud/dinedash/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/dinedash/internal/db/redis"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
	"github.com/kailas-cloud/dinedash/internal/repository/source"
	"github.com/kailas-cloud/dinedash/internal/repository/store"
	"github.com/kailas-cloud/dinedash/internal/usecase/health"
)

// seeder is implemented by sources that can be primed from a file.
type seeder interface {
	Seed(ctx context.Context, records []restaurant.Record) error
}

// pingingSource attaches the backing connection check to a source.
type pingingSource struct {
	store.Source
	ping func(ctx context.Context) error
}

func (p pingingSource) Ping(ctx context.Context) error { return p.ping(ctx) }

// SourcePinger returns the connection check of a source built by
// BuildSource, or nil when the source holds no connection.
func SourcePinger(src store.Source) health.Pinger {
	if p, ok := src.(health.Pinger); ok {
		return p
	}
	return nil
}

// BuildSource creates the configured record source. The returned cleanup
// releases any connection the source holds and is never nil.
func BuildSource(ctx context.Context, cfg config.SourceConfig, logger *zap.Logger) (store.Source, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.DriverFile:
		return source.NewFile(cfg.Path), noop, nil

	case config.DriverHTTP:
		client := &http.Client{Timeout: time.Duration(cfg.LoadTimeoutSec) * time.Second}
		return source.NewHTTP(cfg.URL, client), noop, nil

	case config.DriverRedis:
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("create redis store: %w", err)
		}
		if err := rs.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			rs.Close()
			return nil, noop, fmt.Errorf("redis not ready: %w", err)
		}

		var src interface {
			store.Source
			seeder
		}
		if cfg.Redis.Format == config.RedisFormatJSON {
			src = source.NewRedisJSON(rs, cfg.Redis.Key)
		} else {
			src = source.NewRedis(rs, cfg.Redis.Key)
		}
		if cfg.Redis.SeedFrom != "" {
			if err := seedFromFile(ctx, src, cfg.Redis.SeedFrom); err != nil {
				rs.Close()
				return nil, noop, err
			}
			logger.Info("Seeded redis source",
				zap.String("key", cfg.Redis.Key),
				zap.String("from", cfg.Redis.SeedFrom),
			)
		}
		return pingingSource{Source: src, ping: rs.Ping}, rs.Close, nil

	case config.DriverPostgres:
		conn, err := dbPostgres.Open(ctx, dbPostgres.Config{
			DSN:          cfg.Postgres.DSN,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		src := source.NewPostgres(conn, cfg.Postgres.Table)
		return pingingSource{Source: src, ping: conn.PingContext}, func() { _ = conn.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}

func seedFromFile(ctx context.Context, dst seeder, path string) error {
	records, err := source.NewFile(path).Load(ctx)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	if err := dst.Seed(ctx, records); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// LoadStore performs the one-time load with the configured timeout.
// A failed load is logged and leaves the store empty; the caller keeps
// running.
func LoadStore(ctx context.Context, st *store.Store, timeout time.Duration, logger *zap.Logger) {
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := st.Load(loadCtx); err != nil {
		logger.Error("Record store stays empty", zap.Error(err))
		return
	}
	logger.Info("Record store loaded", zap.Int("records", len(st.Records())))
}
