package di

import (
	"fmt"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/repository"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/service"
	"github.com/cuongccna/tradingjournalai-sub000/internal/handler/api"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/alpaca"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/alphavantage"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/binance"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/cache"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/coingecko"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/credentials"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/finnhub"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/newsapi"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/polygon"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/ratelimit"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/yahoo"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/fallback"
	"github.com/cuongccna/tradingjournalai-sub000/internal/usecase"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	xhttp "github.com/cuongccna/tradingjournalai-sub000/pkg/http"
	pkgkafka "github.com/cuongccna/tradingjournalai-sub000/pkg/kafka"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/metrics"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/server"

	"github.com/redis/go-redis/v9"
)

// Adapters holds one instance of every upstream client.
type Adapters struct {
	CoinGecko    *coingecko.Client
	AlphaVantage *alphavantage.Client
	Polygon      *polygon.Client
	Finnhub      *finnhub.Client
	Alpaca       *alpaca.Client
	Yahoo        *yahoo.Client
	Binance      *binance.Client
	NewsAPI      *newsapi.Client
}

// ProvideKafkaProducer creates the log collector producer, or nil when the
// collector is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Logging.Collector.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithBatching(cfg.Kafka.BatchSize, cfg.Kafka.BatchTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger builds the root logger and attaches the collector before any
// child logger is derived.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Logging.Collector.Interval,
			CountThreshold: cfg.Logging.Collector.CountThreshold,
			Topic:          cfg.Logging.Collector.Topic,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideRedisClient returns nil unless a component is configured to use Redis.
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Credentials.Store != "redis" && cfg.News.Cache != "redis" {
		return nil
	}
	return cache.NewRedisClient(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

func ProvideCredentialStore(cfg *config.Config, rdb *redis.Client) repository.CredentialStore {
	if cfg.Credentials.Store == "redis" && rdb != nil {
		return credentials.NewRedisStore(rdb, cfg.Redis.Prefix)
	}
	return credentials.NewStaticStore(cfg.Credentials.Users)
}

func ProvideCredentialResolver(cfg *config.Config, store repository.CredentialStore, l *applogger.Logger) service.CredentialResolver {
	return credentials.NewResolver(store, credentials.FromMap(cfg.Credentials.Defaults), cfg.Credentials.Timeout, l)
}

func ProvideAdapters(cfg *config.Config, l *applogger.Logger) *Adapters {
	p := cfg.Providers
	return &Adapters{
		CoinGecko:    coingecko.New(p.CoinGecko, l),
		AlphaVantage: alphavantage.New(p.AlphaVantage, l),
		Polygon:      polygon.New(p.Polygon, l),
		Finnhub:      finnhub.New(p.Finnhub, l),
		Alpaca:       alpaca.New(p.Alpaca, l),
		Yahoo:        yahoo.New(p.Yahoo, l),
		Binance:      binance.New(p.Binance, l),
		NewsAPI:      newsapi.New(p.NewsAPI, l),
	}
}

// ProvideMarketProviders fixes the priority order of the quote adapters.
func ProvideMarketProviders(a *Adapters) usecase.Providers {
	return usecase.Providers{
		Crypto: a.CoinGecko,
		Paid: []repository.QuoteProvider{
			a.AlphaVantage,
			a.Polygon,
			a.Finnhub,
			a.Alpaca,
			a.Yahoo,
		},
		News:   a.NewsAPI,
		Single: a.Binance,
	}
}

func ProvideNewsProviders(a *Adapters) []repository.NewsProvider {
	return []repository.NewsProvider{a.AlphaVantage, a.NewsAPI, a.Polygon}
}

func ProvideFallback() *fallback.Generator {
	return fallback.New()
}

func ProvideMarketAggregator(
	cfg *config.Config,
	creds service.CredentialResolver,
	providers usecase.Providers,
	gen *fallback.Generator,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.MarketAggregator {
	return usecase.NewMarketAggregator(creds, providers, gen, m, l.With(applogger.String("component", "aggregator")), usecase.AggregatorConfig{
		TaskTimeout:         cfg.Aggregator.TaskTimeout,
		PortfolioAlertCap:   cfg.Aggregator.PortfolioAlertCap,
		SingleFetchAlertCap: cfg.Aggregator.SingleFetchAlertCap,
		NewsQuerySymbols:    cfg.Aggregator.NewsQuerySymbols,
	})
}

// ProvideNewsCache returns nil when caching is disabled.
func ProvideNewsCache(cfg *config.Config, rdb *redis.Client) repository.BytesCache {
	switch cfg.News.Cache {
	case "redis":
		if rdb != nil {
			return cache.NewRedisCache(rdb, cfg.Redis.Prefix)
		}
	case "memory":
		return cache.NewTTLCache(256)
	}
	return nil
}

func ProvideNewsAggregator(
	cfg *config.Config,
	creds service.CredentialResolver,
	providers []repository.NewsProvider,
	c repository.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.NewsAggregator {
	return usecase.NewNewsAggregator(creds, providers, c, m, l.With(applogger.String("component", "news")), usecase.NewsConfig{
		Timeout:  cfg.Aggregator.TaskTimeout,
		CacheTTL: cfg.News.CacheTTL,
		Limit:    cfg.News.Limit,
	})
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

func ProvideHandlers(
	market *usecase.MarketAggregator,
	news *usecase.NewsAggregator,
	limiter *ratelimit.Limiter,
	l *applogger.Logger,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewMarketEchoHandler(market, limiter, l),
		api.NewNewsEchoHandler(news, l),
	}
}

func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetrics(metricsPath, cfg.Server.SlowRequest),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	producer *pkgkafka.Producer,
	rdb *redis.Client,
) *server.App {
	var resources []server.Resource
	if producer != nil {
		resources = append(resources, server.Resource{Name: "kafka", Close: producer.Close})
	}
	if rdb != nil {
		resources = append(resources, server.Resource{Name: "redis", Close: rdb.Close})
	}
	return server.New(cfg, l, srv, resources...)
}
