// Package config loads fintrack settings from an optional YAML file, a .env
// file and FINTRACK_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/fintrack/internal/storage"
)

// Store drivers.
const (
	DriverBolt    = "bolt"
	DriverSQLite  = "sqlite"
	DriverAzTable = "aztable"
)

type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
}

type AppConfig struct {
	ID string `mapstructure:"id"`
}

type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	TableURL  string `mapstructure:"table_url"`
	TableName string `mapstructure:"table_name"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LedgerConfig struct {
	AccountDeletePolicy string `mapstructure:"account_delete_policy"`
}

type BackupConfig struct {
	Dir       string `mapstructure:"dir"`
	BlobURL   string `mapstructure:"blob_url"`
	Container string `mapstructure:"container"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	App    AppConfig    `mapstructure:"app"`
	Store  StoreConfig  `mapstructure:"store"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Ledger LedgerConfig `mapstructure:"ledger"`
	Backup BackupConfig `mapstructure:"backup"`
	Log    LogConfig    `mapstructure:"log"`
}

var defaults = map[string]any{
	"server.port":                  8080,
	"server.static_path":           "./static",
	"app.id":                       "fintrack",
	"store.driver":                 DriverBolt,
	"store.path":                   "./data/fintrack.db",
	"store.table_url":              "",
	"store.table_name":             "fintrack",
	"auth.jwt_secret":              "",
	"auth.token_ttl":               "24h",
	"ledger.account_delete_policy": string(storage.PolicyCascade),
	"backup.dir":                   "./backups",
	"backup.blob_url":              "",
	"backup.container":             "fintrack-backups",
	"log.level":                    "info",
}

// Load reads configuration. path names a YAML config file; when empty,
// config.yaml in the working directory is used if it exists. A .env file in
// the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. FINTRACK_SERVER_PORT=9000
	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	return &c, nil
}

// Validate reports missing or malformed settings needed to serve requests.
func (c *Config) Validate() error {
	var missing []string
	if c.App.ID == "" {
		missing = append(missing, "app.id")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "auth.jwt_secret")
	}
	switch c.Store.Driver {
	case DriverBolt, DriverSQLite:
		if c.Store.Path == "" {
			missing = append(missing, "store.path")
		}
	case DriverAzTable:
		if c.Store.TableURL == "" {
			missing = append(missing, "store.table_url")
		}
		if c.Store.TableName == "" {
			missing = append(missing, "store.table_name")
		}
	default:
		return fmt.Errorf("unknown store.driver %q (want %s, %s or %s)", c.Store.Driver, DriverBolt, DriverSQLite, DriverAzTable)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if _, err := c.DeletePolicy(); err != nil {
		return err
	}
	return nil
}

// DeletePolicy returns the configured account delete policy.
func (c *Config) DeletePolicy() (storage.DeletePolicy, error) {
	return storage.ParseDeletePolicy(strings.ToLower(c.Ledger.AccountDeletePolicy))
}
