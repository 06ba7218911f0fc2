package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaults []byte

// EnvPrefix namespaces environment overrides: http.addr -> CREDITDASH_HTTP_ADDR.
const EnvPrefix = "CREDITDASH"

// ---- Root ----

type Config struct {
	Log       LogConfig       `mapstructure:"log"        yaml:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"       yaml:"http"`
	Dataset   DatasetConfig   `mapstructure:"dataset"    yaml:"dataset"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"  yaml:"warehouse"`
	Redis     RedisConfig     `mapstructure:"redis"      yaml:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"      yaml:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	Auth      AuthConfig      `mapstructure:"auth"       yaml:"auth"`
	Render    RenderConfig    `mapstructure:"render"     yaml:"render"`
	Worker    WorkerConfig    `mapstructure:"worker"     yaml:"worker"`
}

// ---- Leaf structs ----

type LogConfig struct {
	Level    string `mapstructure:"level"    yaml:"level"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"` // json|console
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"             yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

const (
	SourceFile      = "file"
	SourceWarehouse = "warehouse"
)

type DatasetConfig struct {
	Source string `mapstructure:"source" yaml:"source"` // file|warehouse
	Path   string `mapstructure:"path"   yaml:"path"`
}

type WarehouseConfig struct {
	Driver          string        `mapstructure:"driver"            yaml:"driver"` // clickhouse|mysql
	DSN             string        `mapstructure:"dsn"               yaml:"dsn"`
	Table           string        `mapstructure:"table"             yaml:"table"`
	BatchSize       int           `mapstructure:"batch_size"        yaml:"batch_size"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime" yaml:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"      yaml:"ping_timeout"`
}

type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"      yaml:"enabled"`
	Addr        string        `mapstructure:"addr"         yaml:"addr"`
	Password    string        `mapstructure:"password"     yaml:"password"`
	DB          int           `mapstructure:"db"           yaml:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Prefix  string        `mapstructure:"prefix"  yaml:"prefix"`
	TTL     time.Duration `mapstructure:"ttl"     yaml:"ttl"`
	Breaker BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
}

type BreakerConfig struct {
	FailThreshold int           `mapstructure:"fail_threshold" yaml:"fail_threshold"`
	OpenFor       time.Duration `mapstructure:"open_for"       yaml:"open_for"`
}

type RateLimitConfig struct {
	RPS       int           `mapstructure:"rps"        yaml:"rps"` // 0 disables
	Window    time.Duration `mapstructure:"window"     yaml:"window"`
	KeyPrefix string        `mapstructure:"key_prefix" yaml:"key_prefix"`
}

type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys" yaml:"api_keys"` // empty disables auth
}

type RenderConfig struct {
	Width  int `mapstructure:"width"  yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type WorkerConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env overrides (CREDITDASH_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("read defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("merge %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required for source %q", SourceFile)
		}
	case SourceWarehouse:
		if c.Warehouse.DSN == "" {
			return fmt.Errorf("warehouse.dsn is required for source %q", SourceWarehouse)
		}
	default:
		return fmt.Errorf("dataset.source: unknown source %q", c.Dataset.Source)
	}
	switch c.Warehouse.Driver {
	case "clickhouse", "mysql":
	default:
		return fmt.Errorf("warehouse.driver: unsupported driver %q", c.Warehouse.Driver)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render: width and height must be positive")
	}
	return nil
}

// Dump renders the effective config as YAML with secrets masked.
func (c Config) Dump() ([]byte, error) {
	masked := c
	if masked.Redis.Password != "" {
		masked.Redis.Password = "***"
	}
	if masked.Warehouse.DSN != "" {
		masked.Warehouse.DSN = "***"
	}
	if len(masked.Auth.APIKeys) > 0 {
		masked.Auth.APIKeys = make([]string, len(c.Auth.APIKeys))
		for i := range masked.Auth.APIKeys {
			masked.Auth.APIKeys[i] = "***"
		}
	}
	return yaml.Marshal(masked)
}
