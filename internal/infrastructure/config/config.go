package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store drivers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	APIURL      string        `env:"LOCALTALENT_API_URL, default=http://localhost:8000/api"`
	Port        string        `env:"PORT,                default=8080"`
	Env         string        `env:"ENV,                 default=development"`
	LogLevel    string        `env:"LOG_LEVEL,           default=info"`
	LogPretty   bool          `env:"LOG_PRETTY,          default=false"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,        default=30s"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=file"`
	// Path is the directory of the file store and the cookie jar.
	Path string `env:"STORE_PATH"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=localtalent"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=localtalent:"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverMongo:
	default:
		return nil, fmt.Errorf("load configuration: unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("load configuration: HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	if cfg.Store.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.Store.Path = filepath.Join(dir, "localtalent")
	}
	return &cfg, nil
}

// SessionFile is the file store location.
func (c *Config) SessionFile() string { return filepath.Join(c.Store.Path, "session.json") }

// CookieFile is the persisted cookie jar location.
func (c *Config) CookieFile() string { return filepath.Join(c.Store.Path, "cookies.json") }

func (c *Config) IsProduction() bool { return c.Env == "production" }
