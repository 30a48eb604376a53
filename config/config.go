package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Map      MapConfig      `yaml:"map"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
}

// DataConfig controls where the reference tables come from and how they are enriched.
type DataConfig struct {
	FixturesDir            string        `yaml:"fixtures_dir"`
	ReloadIntervalSeconds  int           `yaml:"reload_interval_seconds"`
	ReloadInterval         time.Duration `yaml:"-"`
	PositionFetchDelayMs   int           `yaml:"position_fetch_delay_ms"`
	PositionFetchDelay     time.Duration `yaml:"-"`
	PositionFetchTimeoutMs int           `yaml:"position_fetch_timeout_ms"`
	PositionFetchTimeout   time.Duration `yaml:"-"`
	Concurrency            int           `yaml:"concurrency"`
	CurrentState           string        `yaml:"current_state"` // "model" or "history"
}

// DatabaseConfig holds the database connection configuration. An empty DSN
// means the fixtures directory is the only data source.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "postgres" or "sqlite"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	SeedFromFixtures       bool   `yaml:"seed_from_fixtures"`
	LogSQL                 bool   `yaml:"log_sql"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MapConfig is the initial viewport of the dashboard map.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat"`
	CenterLon float64 `yaml:"center_lon"`
	Zoom      int     `yaml:"zoom"`
}

const (
	CurrentStateFromModel   = "model"
	CurrentStateFromHistory = "history"
)

// Load reads the configuration from the given path. Environment overrides
// are applied after the file is decoded.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration that serves the bundled fixtures.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.normalize()
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FLEET_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("FLEET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FLEET_FIXTURES_DIR"); v != "" {
		cfg.Data.FixturesDir = v
	}
}

func (cfg *Config) normalize() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Data.FixturesDir == "" {
		cfg.Data.FixturesDir = "./data"
	}
	if cfg.Data.ReloadIntervalSeconds < 0 {
		cfg.Data.ReloadIntervalSeconds = 0
	}
	cfg.Data.ReloadInterval = time.Duration(cfg.Data.ReloadIntervalSeconds) * time.Second
	if cfg.Data.PositionFetchDelayMs < 0 {
		cfg.Data.PositionFetchDelayMs = 0
	}
	cfg.Data.PositionFetchDelay = time.Duration(cfg.Data.PositionFetchDelayMs) * time.Millisecond
	if cfg.Data.PositionFetchTimeoutMs <= 0 {
		cfg.Data.PositionFetchTimeoutMs = 5000
	}
	cfg.Data.PositionFetchTimeout = time.Duration(cfg.Data.PositionFetchTimeoutMs) * time.Millisecond

	switch cfg.Data.CurrentState {
	case "":
		cfg.Data.CurrentState = CurrentStateFromModel
	case CurrentStateFromModel, CurrentStateFromHistory:
	default:
		return fmt.Errorf("data.current_state must be %q or %q, got %q", CurrentStateFromModel, CurrentStateFromHistory, cfg.Data.CurrentState)
	}

	switch cfg.Database.Driver {
	case "":
		cfg.Database.Driver = "postgres"
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be \"postgres\" or \"sqlite\", got %q", cfg.Database.Driver)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Map.CenterLat == 0 && cfg.Map.CenterLon == 0 {
		cfg.Map.CenterLat = -19.151801
		cfg.Map.CenterLon = -46.007759
	}
	if cfg.Map.Zoom <= 0 {
		cfg.Map.Zoom = 13
	}
	return nil
}
