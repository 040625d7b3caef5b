package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Veraticus/pantry/internal/common"
)

// Configuration keys.
const (
	KeyDatabasePath  = "database.path"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyExpiringDays  = "inventory.expiring_days"
	KeyTheme         = "browser.theme"
	DefaultDBPath    = "$HOME/.local/share/pantry/pantry.db"
	defaultExpiring  = 3
	maxExpiringDays  = 365
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultTheme     = "default"
)

// Config holds the resolved application settings.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	// Theme names the browser color scheme; the browser validates it.
	Theme string
	// ExpiringDays is how many days ahead items are flagged as expiring soon.
	ExpiringDays int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDBPath)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)
	v.SetDefault(KeyExpiringDays, defaultExpiring)
	v.SetDefault(KeyTheme, defaultTheme)
}

// Load reads the settings from v, expands the database path and validates
// the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: v.GetString(KeyDatabasePath),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Theme:        v.GetString(KeyTheme),
		ExpiringDays: v.GetInt(KeyExpiringDays),
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDBPath
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	if c.ExpiringDays < 0 || c.ExpiringDays > maxExpiringDays {
		return fmt.Errorf("%w: %s must be between 0 and %d, got %d",
			common.ErrInvalidConfig, KeyExpiringDays, maxExpiringDays, c.ExpiringDays)
	}
	return nil
}
