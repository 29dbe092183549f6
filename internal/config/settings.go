package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. SAVINGS_ENGINE_MAX_MONTHS.
const EnvPrefix = "SAVINGS"

// Settings is the application configuration for the CLI and API server.
type Settings struct {
	Engine  EngineSettings  `mapstructure:"engine"  yaml:"engine"`
	Output  OutputSettings  `mapstructure:"output"  yaml:"output"`
	Server  ServerSettings  `mapstructure:"server"  yaml:"server"`
	Cache   CacheSettings   `mapstructure:"cache"   yaml:"cache"`
	Logging LoggingSettings `mapstructure:"logging" yaml:"logging"`
}

// EngineSettings tunes the projection engine.
type EngineSettings struct {
	MaxMonths int `mapstructure:"max_months" yaml:"max_months"`
}

// OutputSettings holds report defaults.
type OutputSettings struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerSettings holds HTTP API settings.
type ServerSettings struct {
	Addr        string   `mapstructure:"addr"         yaml:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// CacheSettings selects the projection cache.
type CacheSettings struct {
	Backend   string        `mapstructure:"backend"    yaml:"backend"`
	RedisAddr string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"        yaml:"ttl"`
}

// LoggingSettings controls the zerolog logger.
type LoggingSettings struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console or json
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Engine: EngineSettings{MaxMonths: calculation.DefaultMaxMonths},
		Output: OutputSettings{Format: "console"},
		Server: ServerSettings{Addr: ":8080", CORSOrigins: []string{"*"}},
		Cache: CacheSettings{
			Backend:   CacheBackendMemory,
			RedisAddr: "localhost:6379",
			TTL:       time.Hour,
		},
		Logging: LoggingSettings{Level: "info", Format: "console"},
	}
}

// LoadSettings reads settings from an optional file, a .env file in the
// working directory and SAVINGS_* environment variables, in increasing
// order of precedence. An empty path searches ./savings.yaml and
// $HOME/.config/savings/savings.yaml.
func LoadSettings(path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("savings")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/savings")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("engine.max_months", d.Engine.MaxMonths)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks settings values.
func (s *Settings) Validate() error {
	if s.Engine.MaxMonths <= 0 {
		return fmt.Errorf("engine.max_months must be positive")
	}
	switch s.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("cache.backend must be %q, %q or %q", CacheBackendMemory, CacheBackendRedis, CacheBackendNone)
	}
	if s.Cache.Backend == CacheBackendRedis && s.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\"")
	}
	return nil
}
