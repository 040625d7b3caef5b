package tui

import (
	"time"

	"github.com/Veraticus/pantry/internal/service"
	"github.com/Veraticus/pantry/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme        themes.Theme
	Categories   service.FoodTypeResolver
	Items        service.InventoryStore
	Now          func() time.Time
	Timeout      time.Duration
	ExpiringDays int
	Width        int
	Height       int
	AltScreen    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Now:          time.Now,
		Timeout:      10 * time.Second,
		ExpiringDays: 3,
		Width:        80,
		Height:       24,
		AltScreen:    true,
	}
}

// WithStores sets the stores the browser reads and writes.
func WithStores(categories service.FoodTypeResolver, items service.InventoryStore) Option {
	return func(c *Config) {
		c.Categories = categories
		c.Items = items
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithClock sets the clock used to flag expiring items.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithExpiringDays sets how many days ahead items count as expiring soon.
func WithExpiringDays(days int) Option {
	return func(c *Config) {
		c.ExpiringDays = days
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
