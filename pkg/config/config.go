package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultPath is the settings file consulted when no --config flag is given.
	DefaultPath = "config/settings.ini"

	defaultDBPath = "data/studytracker.db"
)

type Config struct {
	Env string

	Database DatabaseConfig
	Log      LogConfig
	Exports  ExportsConfig
	Metrics  MetricsConfig
	Server   ServerConfig
}

type DatabaseConfig struct {
	Driver string
	Path   string
	DSN    string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportsConfig controls where artifacts land and which optional renderers are available.
type ExportsConfig struct {
	Dir                 string
	SpreadsheetsEnabled bool
	ChartsEnabled       bool
}

// MetricsConfig points at an optional Prometheus textfile written after each command.
type MetricsConfig struct {
	Textfile string
}

type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// Load reads .env, the settings file and the environment, in increasing precedence.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType(configType(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := &Config{Env: v.GetString("env")}

	dbPath := v.GetString("database.path")
	if dbPath == "" {
		dbPath = v.GetString("database.db_path")
	}
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	cfg.Database = DatabaseConfig{
		Driver: strings.ToLower(v.GetString("database.driver")),
		Path:   dbPath,
		DSN:    v.GetString("database.dsn"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	cfg.Exports = ExportsConfig{
		Dir:                 v.GetString("exports.dir"),
		SpreadsheetsEnabled: v.GetBool("exports.spreadsheets_enabled"),
		ChartsEnabled:       v.GetBool("exports.charts_enabled"),
	}

	cfg.Metrics = MetricsConfig{Textfile: v.GetString("metrics.textfile")}
	cfg.Server = ServerConfig{
		Port:           v.GetInt("server.port"),
		AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the store adapter depends on.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path required for sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn required for postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("exports.dir", ".")
	v.SetDefault("exports.spreadsheets_enabled", true)
	v.SetDefault("exports.charts_enabled", true)

	v.SetDefault("metrics.textfile", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", "")
}

// splitList reads a comma separated setting, which is how ini files and the environment carry lists.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".env":
		return "env"
	default:
		return "ini"
	}
}
