package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackorder/internal/server"
	"github.com/matzehuels/stackorder/pkg/cache"
	errs "github.com/matzehuels/stackorder/pkg/errors"
	"github.com/matzehuels/stackorder/pkg/observability"
	"github.com/matzehuels/stackorder/pkg/resolve"
)

// Cache backends for the serve command.
const (
	cacheNone  = "none"
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheMongo = "mongo"
)

type serveOptions struct {
	addr      string
	backend   string
	redisAddr string
	mongoURI  string
	keyPrefix string
	metrics   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve order resolution over HTTP.

  GET  /healthz
  GET  /metrics
  POST /v1/order?strategy=kahn

Resolved orders are cached in the selected backend. Redis and MongoDB
addresses fall back to $` + envRedisAddr + ` and $` + envMongoURI + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.backend, "cache", cacheFile, "cache backend (none, file, redis, mongo)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", envOr(envRedisAddr, "localhost:6379"), "redis address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", envOr(envMongoURI, "mongodb://localhost:27017"), "mongodb connection URI")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", "", "prefix for cache keys when sharing a backend")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "expose Prometheus metrics at /metrics")

	_ = cmd.RegisterFlagCompletionFunc("cache", cobra.FixedCompletions(
		[]string{cacheNone, cacheFile, cacheRedis, cacheMongo}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOptions) error {
	store, err := openCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	var keyer cache.Keyer
	if opts.keyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.keyPrefix)
	}

	var serverOpts []server.Option
	if opts.metrics {
		h, err := newMetricsHandler()
		if err != nil {
			return err
		}
		serverOpts = append(serverOpts, server.WithMetrics(h))
	}

	c.Logger.Info("starting server", "addr", opts.addr, "cache", opts.backend, "metrics", opts.metrics)
	srv := server.New(resolve.NewRunner(store, keyer, c.Logger), c.Logger, serverOpts...)
	return srv.ListenAndServe(ctx, opts.addr)
}

// newMetricsHandler installs Prometheus hooks for resolve, cache and HTTP
// events on a fresh registry, replacing any debug log hooks, and returns the
// scrape handler.
func newMetricsHandler() (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hooks, err := observability.NewPrometheusHooks(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	observability.SetResolveHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// openCache connects the backend named by opts.backend.
func openCache(ctx context.Context, opts serveOptions) (cache.Cache, error) {
	if err := errs.ValidateOneOf(errs.ErrCodeInvalidInput, "cache backend", opts.backend,
		cacheNone, cacheFile, cacheRedis, cacheMongo); err != nil {
		return nil, err
	}

	switch opts.backend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheFile:
		return newCache(false)
	case cacheRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis at %s: %w", opts.redisAddr, err)
		}
		return c, nil
	default:
		c, err := cache.NewMongoCache(ctx, cache.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		return c, nil
	}
}
