// Command server runs the Goteo web front: every page request goes through
// the request normalizer before reaching the site router.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/goteo/foundation/core/config"
	"github.com/goteo/foundation/core/logger"
	"github.com/goteo/foundation/core/server"
	"github.com/goteo/foundation/core/session"
	"github.com/goteo/foundation/integration/database/redis"
)

const sessionReapInterval = time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.ForEnv(cfg.AppName, cfg.Normalizer.Env),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	var client goredis.UniversalClient
	if cfg.RedisEnabled {
		c, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		client = c
	}

	a, err := newApp(cfg, client, log)
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, a.handler()))
	if ms, ok := a.store.(*session.MemoryStore); ok {
		g.Go(func() error {
			reapSessions(ctx, ms, sessionReapInterval, log)
			return nil
		})
	}
	return g.Wait()
}

// reapSessions drops expired in-memory sessions until ctx is done.
// Redis expires its keys on its own.
func reapSessions(ctx context.Context, store *session.MemoryStore, every time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				log.WarnContext(ctx, "session reaper failed", logger.Error(err))
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "expired sessions removed", slog.Int64("count", n))
			}
		}
	}
}
