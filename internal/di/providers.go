package di

import (
	"context"
	"fmt"
	"time"

	"StratLab/internal/handler/api"
	"StratLab/internal/indicators"
	"StratLab/internal/service/cache"
	svcmetrics "StratLab/internal/service/metrics"
	"StratLab/internal/service/ratelimit"
	"StratLab/internal/strategy"
	"StratLab/internal/usecase"
	"StratLab/pkg/config"
	xhttp "StratLab/pkg/http"
	"StratLab/pkg/logger"
	"StratLab/pkg/metrics"
	"StratLab/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvidePrometheusRegistry creates an isolated registry with runtime collectors.
func ProvidePrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.New(reg)
}

// ProvideAPIMetrics creates the per-endpoint collectors.
func ProvideAPIMetrics(reg *prometheus.Registry) *svcmetrics.APIMetrics {
	return svcmetrics.Register(reg)
}

// ProvideIndicatorRegistry registers the built-in indicators for the configured timeframes.
func ProvideIndicatorRegistry(cfg *config.Config) *indicators.Registry {
	r := indicators.NewRegistry()
	indicators.RegisterBuiltins(r, cfg.Indicators.Timeframes...)
	return r
}

// ProvideSpecRegistry registers the built-in parameter rules.
func ProvideSpecRegistry() *strategy.SpecRegistry {
	r := strategy.NewSpecRegistry()
	strategy.RegisterBuiltinSpecs(r)
	return r
}

// ProvideSchema creates the strategy schema with config overrides.
func ProvideSchema(cfg *config.Config, specs *strategy.SpecRegistry) *strategy.Schema {
	opts := []strategy.Option{strategy.WithRequireKind(cfg.Schema.RequireKind)}
	if len(cfg.Schema.IndicatorNames) > 0 {
		opts = append(opts, strategy.WithIndicatorNames(cfg.Schema.IndicatorNames...))
	}
	return strategy.NewSchema(specs, opts...)
}

// ProvideResultCache creates the calc-result cache: in-memory, layered over
// Redis when enabled. It returns nil when caching is disabled. An unreachable
// Redis is logged and skipped.
func ProvideResultCache(cfg *config.Config, l *logger.Logger) (cache.BytesCache, func(), error) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		return nil, noop, nil
	}
	mem := cache.NewTTLCache(cfg.Cache.MaxEntries)
	if !cfg.Cache.Redis.Enabled {
		return mem, noop, nil
	}

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		l.Warn("redis unavailable, using in-memory cache only",
			logger.String("addr", cfg.Cache.Redis.Addr),
			logger.Error(err),
		)
		return mem, noop, nil
	}
	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", logger.Error(err))
		}
	}
	return cache.NewLayered(mem, rc, cfg.Cache.TTL), cleanup, nil
}

// ProvideIndicatorService creates the calc use case.
func ProvideIndicatorService(
	cfg *config.Config,
	registry *indicators.Registry,
	rec *metrics.Recorder,
	c cache.BytesCache,
	l *logger.Logger,
) *usecase.IndicatorService {
	var opts []usecase.IndicatorOption
	if c != nil {
		opts = append(opts, usecase.WithResultCache(c, cfg.Cache.TTL))
	}
	return usecase.NewIndicatorService(registry, rec, l, opts...)
}

// ProvideStrategyService creates the validate/evaluate use case.
func ProvideStrategyService(
	schema *strategy.Schema,
	eval *usecase.Evaluator,
	rec *metrics.Recorder,
	l *logger.Logger,
) *usecase.StrategyService {
	return usecase.NewStrategyService(schema, eval, rec, l)
}

// ProvideHTTPHandler creates the API route handler.
func ProvideHTTPHandler(
	ind *usecase.IndicatorService,
	st *usecase.StrategyService,
	m *svcmetrics.APIMetrics,
	l *logger.Logger,
) xhttp.Handler {
	return api.NewHandler(ind, st, m, l)
}

// ProvideRateLimiter creates the per-client token bucket.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	h xhttp.Handler,
	reg *prometheus.Registry,
	lim *ratelimit.Limiter,
	l *logger.Logger,
) *xhttp.Server {
	path := ""
	if cfg.Metrics.Enabled {
		path = cfg.Metrics.Path
	}
	return xhttp.NewServer(h,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(path, reg, reg),
		xhttp.WithLogger(l),
		xhttp.WithMiddleware(ratelimit.Middleware(lim)),
	)
}

// ProvideApp creates the application server.
func ProvideApp(srv *xhttp.Server, lim *ratelimit.Limiter, l *logger.Logger) *server.App {
	return server.New(srv, lim, l)
}
