package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ProviderConfig describes one upstream market-data source.
type ProviderConfig struct {
	Enabled    bool          `yaml:"enabled"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxSymbols int           `yaml:"max_symbols"`
	Delay      time.Duration `yaml:"delay"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		CORS            bool          `yaml:"cors"`
		SlowRequest     time.Duration `yaml:"slow_request"`
	} `yaml:"server"`
	Logging struct {
		Level     string `yaml:"level"`
		Format    string `yaml:"format"`
		Output    string `yaml:"output"`
		Collector struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic"`
			Interval       time.Duration `yaml:"interval"`
			CountThreshold int           `yaml:"count_threshold"`
		} `yaml:"collector"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Credentials struct {
		// Store is "static" (users below) or "redis".
		Store    string                       `yaml:"store"`
		Defaults map[string]string            `yaml:"defaults"`
		Users    map[string]map[string]string `yaml:"users"`
		Timeout  time.Duration                `yaml:"timeout"`
	} `yaml:"credentials"`
	Aggregator struct {
		TaskTimeout         time.Duration `yaml:"task_timeout"`
		PortfolioAlertCap   int           `yaml:"portfolio_alert_cap"`
		SingleFetchAlertCap int           `yaml:"single_fetch_alert_cap"`
		NewsQuerySymbols    int           `yaml:"news_query_symbols"`
	} `yaml:"aggregator"`
	Providers struct {
		CoinGecko    ProviderConfig `yaml:"coingecko"`
		AlphaVantage ProviderConfig `yaml:"alpha_vantage"`
		Polygon      ProviderConfig `yaml:"polygon"`
		Finnhub      ProviderConfig `yaml:"finnhub"`
		Alpaca       ProviderConfig `yaml:"alpaca"`
		Yahoo        ProviderConfig `yaml:"yahoo_finance"`
		Binance      ProviderConfig `yaml:"binance"`
		NewsAPI      ProviderConfig `yaml:"newsapi"`
	} `yaml:"providers"`
	News struct {
		Cache    string        `yaml:"cache"` // memory, redis or none
		CacheTTL time.Duration `yaml:"cache_ttl"`
		Limit    int           `yaml:"limit"`
	} `yaml:"news"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"ratelimit"`
}

// envOverrides is the MARKET_* environment layer applied on top of the YAML file.
type envOverrides struct {
	Environment     string   `envconfig:"ENVIRONMENT"`
	Port            int      `envconfig:"PORT"`
	LogLevel        string   `envconfig:"LOG_LEVEL"`
	RedisAddr       string   `envconfig:"REDIS_ADDR"`
	KafkaBrokers    []string `envconfig:"KAFKA_BROKERS"`
	CredentialStore string   `envconfig:"CREDENTIAL_STORE"`
	AlphaVantageKey string   `envconfig:"ALPHA_VANTAGE_API_KEY"`
	PolygonKey      string   `envconfig:"POLYGON_API_KEY"`
	FinnhubKey      string   `envconfig:"FINNHUB_API_KEY"`
	AlpacaKey       string   `envconfig:"ALPACA_API_KEY"`
	NewsAPIKey      string   `envconfig:"NEWS_API_KEY"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, fills defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, then the MARKET_* variables.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv("MARKET"); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(prefix string) error {
	var env envOverrides
	if err := envconfig.Process(prefix, &env); err != nil {
		return fmt.Errorf("env config: %w", err)
	}

	if env.Environment != "" {
		c.Environment = env.Environment
	}
	if env.Port > 0 {
		c.Server.Port = env.Port
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	if env.RedisAddr != "" {
		c.Redis.Addr = env.RedisAddr
	}
	if len(env.KafkaBrokers) > 0 {
		c.Kafka.Brokers = env.KafkaBrokers
	}
	if env.CredentialStore != "" {
		c.Credentials.Store = env.CredentialStore
	}

	if c.Credentials.Defaults == nil {
		c.Credentials.Defaults = map[string]string{}
	}
	for name, v := range map[string]string{
		"alpha_vantage": env.AlphaVantageKey,
		"polygon":       env.PolygonKey,
		"finnhub":       env.FinnhubKey,
		"alpaca":        env.AlpacaKey,
		"newsapi":       env.NewsAPIKey,
	} {
		if v != "" {
			c.Credentials.Defaults[name] = v
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	// an aggregation call may legitimately wait on paced providers
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "tradingjournal"
	}
	if c.Credentials.Store == "" {
		c.Credentials.Store = "static"
	}
	if c.Credentials.Timeout == 0 {
		c.Credentials.Timeout = 2 * time.Second
	}
	if c.Aggregator.TaskTimeout == 0 {
		c.Aggregator.TaskTimeout = 45 * time.Second
	}
	if c.Aggregator.PortfolioAlertCap == 0 {
		c.Aggregator.PortfolioAlertCap = 15
	}
	if c.Aggregator.SingleFetchAlertCap == 0 {
		c.Aggregator.SingleFetchAlertCap = 10
	}
	if c.Aggregator.NewsQuerySymbols == 0 {
		c.Aggregator.NewsQuerySymbols = 3
	}

	p := &c.Providers
	providerDefaults(&p.CoinGecko, "https://api.coingecko.com/api/v3", 0, 0)
	providerDefaults(&p.AlphaVantage, "https://www.alphavantage.co", 3, 12*time.Second)
	providerDefaults(&p.Polygon, "https://api.polygon.io", 2, 12*time.Second)
	providerDefaults(&p.Finnhub, "https://finnhub.io/api/v1", 5, time.Second)
	providerDefaults(&p.Alpaca, "https://data.alpaca.markets", 10, 0)
	providerDefaults(&p.Yahoo, "", 5, 500*time.Millisecond)
	providerDefaults(&p.Binance, "https://api.binance.com", 0, 0)
	providerDefaults(&p.NewsAPI, "https://newsapi.org", 0, 0)

	if c.News.Cache == "" {
		c.News.Cache = "memory"
	}
	if c.News.CacheTTL == 0 {
		c.News.CacheTTL = time.Minute
	}
	if c.News.Limit == 0 {
		c.News.Limit = 20
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 10
	}
	if c.RateLimit.RefillPerSec == 0 {
		c.RateLimit.RefillPerSec = 2
	}
}

func providerDefaults(p *ProviderConfig, baseURL string, maxSymbols int, delay time.Duration) {
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
	if p.Timeout == 0 {
		p.Timeout = 10 * time.Second
	}
	if p.MaxSymbols == 0 {
		p.MaxSymbols = maxSymbols
	}
	if p.Delay == 0 {
		p.Delay = delay
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Credentials.Store {
	case "static", "redis":
	default:
		return fmt.Errorf("credentials.store must be 'static' or 'redis', got '%s'", c.Credentials.Store)
	}
	if c.Credentials.Store == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when credentials.store is redis")
	}
	switch c.News.Cache {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("news.cache must be 'memory', 'redis' or 'none', got '%s'", c.News.Cache)
	}
	if c.News.Cache == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when news.cache is redis")
	}
	if c.Logging.Collector.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when logging.collector is enabled")
	}
	if c.Aggregator.TaskTimeout < 0 {
		return fmt.Errorf("aggregator.task_timeout must be positive")
	}
	if c.Aggregator.PortfolioAlertCap < 0 || c.Aggregator.SingleFetchAlertCap < 0 {
		return fmt.Errorf("aggregator alert caps must be positive")
	}
	return nil
}
