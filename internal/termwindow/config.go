package termwindow

import (
	"fmt"
	"time"
)

// Config holds the tunables of a terminal window.
type Config struct {
	// Title is the initial window title.
	// Default: "wezterm"
	Title string

	// AtlasSize is the initial side length of the glyph texture atlas.
	// The atlas grows by replacement when exhausted.
	// Default: 4096
	AtlasSize int

	// TimerInterval is the period of the dirty-line poll that requests
	// repaints, independent of OS paint cadence.
	// Default: 35ms
	TimerInterval time.Duration

	// OnSpawnWindow, when set, handles the SpawnWindow assignment by
	// opening a whole new window. Left nil the assignment is logged
	// and ignored.
	OnSpawnWindow func() error

	// OnOpenLink, when set, opens a hyperlink clicked in the grid,
	// typically through the system opener. Left nil link clicks are
	// logged and ignored.
	OnOpenLink func(uri string) error
}

// DefaultConfig returns the default window configuration.
func DefaultConfig() Config {
	return Config{
		Title:         "wezterm",
		AtlasSize:     4096,
		TimerInterval: 35 * time.Millisecond,
	}
}

// Validate checks the configuration, filling zero values with defaults.
func (c *Config) Validate() error {
	if c.Title == "" {
		c.Title = "wezterm"
	}
	if c.AtlasSize == 0 {
		c.AtlasSize = 4096
	}
	if c.AtlasSize < 64 {
		return fmt.Errorf("termwindow: atlas size %d too small, need at least 64", c.AtlasSize)
	}
	if c.TimerInterval == 0 {
		c.TimerInterval = 35 * time.Millisecond
	}
	if c.TimerInterval < 0 {
		return fmt.Errorf("termwindow: negative timer interval %v", c.TimerInterval)
	}
	return nil
}
