package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"

	DefaultKafkaTopic    = "gymlog.workouts"
	DefaultChartWidth    = 700
	DefaultChartHeight   = 220
	defaultDataPath      = "data/workouts.json"
	defaultClientTimeout = 10 * time.Second
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	Storage        string `toml:"storage"`
	DataPath       string `toml:"data_path"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis (rate limiting)
	RedisHost           string `toml:"redis_host"`
	RedisPort           string `toml:"redis_port"`
	PostRateLimitPerMin int    `toml:"post_rate_limit_per_min"`
	// events
	KafkaBrokers []string `toml:"kafka_brokers"`
	KafkaTopic   string   `toml:"kafka_topic"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// page / client
	APIBaseURL    string        `toml:"api_base_url"`
	ClientTimeout time.Duration `toml:"client_timeout"`
	ChartWidth    int           `toml:"chart_width"`
	ChartHeight   int           `toml:"chart_height"`

	Secrets Secrets `toml:"-"`
}

// Secrets are never read from the config file.
type Secrets struct {
	SentryDSN        string `env:"SENTRY_DSN"`
	RedisPassword    string `env:"GYMLOG_REDIS_PASS"`
	PostgresPassword string `env:"GYMLOG_POSTGRES_PASS"`
	CSRFKey          string `env:"GYMLOG_CSRF_KEY"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	return LoadWithLookuper(env, path, envconfig.OsLookuper())
}

func LoadWithLookuper(env, path string, lookuper envconfig.Lookuper) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var tomlConfig Toml
	if _, err := toml.Decode(string(content), &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in %s", env, path)
	}

	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg.Secrets,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Storage == "" {
		c.Storage = StorageFile
	}
	if c.DataPath == "" {
		c.DataPath = defaultDataPath
	}
	if c.KafkaTopic == "" {
		c.KafkaTopic = DefaultKafkaTopic
	}
	if c.ClientTimeout <= 0 {
		c.ClientTimeout = defaultClientTimeout
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = DefaultChartWidth
	}
	if c.ChartHeight <= 0 {
		c.ChartHeight = DefaultChartHeight
	}
	if c.APIBaseURL == "" {
		host := c.Host
		if host == "" {
			host = "localhost"
		}
		c.APIBaseURL = fmt.Sprintf("http://%s:%d", host, c.Port)
	}
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageFile, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage: %s", c.Storage)
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
