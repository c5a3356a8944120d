// Package config resolves runtime settings from defaults, an optional YAML
// file, TASKBOARD_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. TASKBOARD_BACKEND.
const EnvPrefix = "TASKBOARD"

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

type Config struct {
	Backend      Backend     `mapstructure:"backend" yaml:"backend"`
	DBPath       string      `mapstructure:"db_path" yaml:"db_path"`
	Redis        RedisConfig `mapstructure:"redis" yaml:"redis"`
	Log          LogConfig   `mapstructure:"log" yaml:"log"`
	LoginDelayMs int         `mapstructure:"login_delay_ms" yaml:"login_delay_ms"`
	Trace        bool        `mapstructure:"trace" yaml:"trace"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// LoginDelay is the artificial pause before a login attempt is answered.
func (c *Config) LoginDelay() time.Duration {
	if c.LoginDelayMs <= 0 {
		return 0
	}
	return time.Duration(c.LoginDelayMs) * time.Millisecond
}

// Validate rejects settings no backend can run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, redis or memory)", c.Backend)
	}
	return nil
}

// HomeDir returns ~/.taskboard, or the working directory when no home
// directory is available.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(home, ".taskboard")
}

// DefaultPath is the config file consulted when none is given.
func DefaultPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend: BackendSQLite,
		DBPath:  filepath.Join(HomeDir(), "taskboard.db"),
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "taskboard:",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		LoginDelayMs: 550,
	}
}

// Load resolves the configuration. path may be empty, in which case
// DefaultPath is used if it exists. flags may be nil; when set, only flags
// the user actually changed override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("backend", string(d.Backend))
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.prefix", d.Redis.Prefix)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("login_delay_ms", d.LoginDelayMs)
	v.SetDefault("trace", d.Trace)
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"backend":   "backend",
	"db":        "db_path",
	"redis":     "redis.addr",
	"log-level": "log.level",
	"trace":     "trace",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// RegisterFlags adds the overridable settings to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (default ~/.taskboard/config.yaml)")
	fs.String("backend", "", "Storage backend: sqlite, redis or memory")
	fs.String("db", "", "SQLite database path")
	fs.String("redis", "", "Redis address for the redis backend")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.Bool("trace", false, "Emit OpenTelemetry spans for board operations")
}
