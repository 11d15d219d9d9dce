package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// auth
	AuthRateLimitAllowedPerMin int      `toml:"auth_rate_limit_allowed_per_min"`
	TokenTTL                   Duration `toml:"token_ttl"`
	AllowedOrigins             []string `toml:"allowed_origins"`

	// workouts list cache
	WorkoutsCacheSizeMB  int `toml:"workouts_cache_size_mb"`
	WorkoutsCacheTTLSecs int `toml:"workouts_cache_ttl_sec"`
}

// Duration lets TOML values like "168h" decode into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
	Docker      *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev", "docker":
		cfg = t.Docker
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.AuthRateLimitAllowedPerMin <= 0 {
		c.AuthRateLimitAllowedPerMin = 10
	}
	if c.TokenTTL.Duration <= 0 {
		c.TokenTTL.Duration = 7 * 24 * time.Hour
	}
	if c.WorkoutsCacheSizeMB <= 0 {
		c.WorkoutsCacheSizeMB = 64
	}
	if c.WorkoutsCacheTTLSecs <= 0 {
		c.WorkoutsCacheTTLSecs = 60
	}
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return tomlConfig.Get(env)
}
