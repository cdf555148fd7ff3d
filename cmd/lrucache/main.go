package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Alex-Alec/Project2-LRUCache/internal/cache"
	"github.com/Alex-Alec/Project2-LRUCache/internal/config"
	"github.com/Alex-Alec/Project2-LRUCache/internal/logging"
	"github.com/Alex-Alec/Project2-LRUCache/internal/provider"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Signal-aware context is the root of ownership for long-lived work.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, flag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "lrucache: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, keys []string, in io.Reader, out io.Writer) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	p, closeProvider, err := newProvider(ctx, cfg.Provider, logger)
	if err != nil {
		return err
	}
	defer closeProvider()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	c, err := cache.New(p, cfg.Cache.Capacity,
		cache.WithLogger[string, string](logger),
		cache.WithMetrics[string, string](registry, cfg.Cache.Name),
		cache.WithEvictionCallback[string, string](func(key, _ string) {
			logger.Debug("evicted", "key", key)
		}),
	)
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		shutdown := serveMetrics(cfg.Metrics.Addr, registry, logger)
		defer shutdown()
	}

	logger.Info("lrucache starting",
		"capacity", cfg.Cache.Capacity,
		"provider", cfg.Provider.Kind)

	if len(keys) > 0 {
		for _, key := range keys {
			if ctx.Err() != nil {
				break
			}
			lookup(ctx, c, key, out, logger)
		}
	} else {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if ctx.Err() != nil {
				logger.Info("received shutdown signal")
				break
			}
			if key := scanner.Text(); key != "" {
				lookup(ctx, c, key, out, logger)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read keys: %w", err)
		}
	}

	s := c.Stats().Summary()
	logger.Info("lrucache done",
		"hits", s.Hits,
		"misses", s.Misses,
		"evictions", s.Evictions,
		"not_found", s.NotFound,
		"provider_errors", s.ProviderErrors,
		"hit_ratio", s.HitRatio)
	return nil
}

// lookup resolves one key and prints "key<TAB>value<TAB>hit|miss".
func lookup(ctx context.Context, c *cache.LRU[string, string], key string, out io.Writer, logger *slog.Logger) {
	before := c.MissCount()
	value, err := c.Get(ctx, key)
	status := "hit"
	if c.MissCount() != before {
		status = "miss"
	}

	switch {
	case cache.IsNotFound(err):
		fmt.Fprintf(out, "%s\t<not found>\t%s\n", key, status)
	case err != nil:
		logger.Error("lookup failed", "key", key, "error", err)
	default:
		fmt.Fprintf(out, "%s\t%s\t%s\n", key, value, status)
	}
}

// newProvider builds the configured provider and a func releasing its resources.
func newProvider(ctx context.Context, cfg config.ProviderConfig, logger *slog.Logger) (cache.Provider[string, string], func(), error) {
	switch cfg.Kind {
	case config.ProviderRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
		})
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", "error", err)
			}
		}
		p := provider.NewRedis(client, cfg.Redis.Prefix)
		if err := p.Ping(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return p, closeFn, nil

	case config.ProviderPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		if cfg.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = cfg.Postgres.MaxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		p, err := provider.NewPostgres(pool, cfg.Postgres.Table)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return p, pool.Close, nil

	default:
		m := provider.NewMap[string, string]()
		m.Populate(cfg.Memory.Populate, func(i int) (string, string) {
			s := strconv.Itoa(i)
			return s, s
		})
		return m, func() {}, nil
	}
}

// serveMetrics exposes /metrics and returns a func that shuts the server down.
func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	return func() {
		// Shutdown gets its own deadline: the root ctx may already be canceled.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}
}
