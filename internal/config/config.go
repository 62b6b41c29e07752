package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	EnvSchemaVersion string `env:"ENV_SCHEMA_VERSION" envDefault:"1.0" validate:"eq=1.0"`
	Environment      string `env:"ENVIRONMENT" envDefault:"dev" validate:"oneof=dev staging prod production test"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir           string `env:"LOG_DIR" envDefault:"logs"`

	Port            int           `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	APIKey          string        `env:"API_KEY" validate:"required"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory" validate:"oneof=memory sqlite postgres none"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/arsenal.db" validate:"required_if=StoreDriver sqlite"`

	DBUser        string        `env:"DB_USER" envDefault:"postgres" validate:"required_if=StoreDriver postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost" validate:"required_if=StoreDriver postgres"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432" validate:"required_if=StoreDriver postgres"`
	DBName        string        `env:"DB_NAME" envDefault:"arsenal" validate:"required_if=StoreDriver postgres"`
	DBMaxConns    int           `env:"DB_MAX_CONNS" envDefault:"10" validate:"min=1"`
	DBMaxConnIdle time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFE" envDefault:"1h"`

	CatalogPath string `env:"CATALOG_PATH" envDefault:"configs/catalog.yaml"`

	InventoryMaxSelected int           `env:"INVENTORY_MAX_SELECTED" envDefault:"3" validate:"min=1"`
	InventoryCacheSize   int           `env:"INVENTORY_CACHE_SIZE" envDefault:"1024" validate:"min=1"`
	InventoryCacheTTL    time.Duration `env:"INVENTORY_CACHE_TTL" envDefault:"10m" validate:"gt=0"`

	ResolverTierLevels []int `env:"RESOLVER_TIER_LEVELS" envSeparator:"," envDefault:"1,3,5,8" validate:"min=1,max=4,dive,min=0"`

	SyncOnBoot      bool `env:"SYNC_ON_BOOT" envDefault:"true"`
	SyncMigrateKeys bool `env:"SYNC_MIGRATE_KEYS" envDefault:"true"`
	// Zero disables the periodic reload of the stored catalog
	SyncRefreshInterval time.Duration `env:"SYNC_REFRESH_INTERVAL" envDefault:"0s" validate:"gte=0"`

	// Failed observers are retried this many times before being dead-lettered
	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"3" validate:"min=0"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s" validate:"gt=0"`
	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`
}

// Load loads the configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set in
// the process environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithoutValidation parses the environment like Load but skips
// validation, for operator tools that never serve requests
func LoadWithoutValidation() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsProduction reports whether the environment is a production one
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProd || c.Environment == EnvironmentProduction
}
