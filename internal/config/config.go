// Package config provides YAML-based client configuration loading for the
// invaders client.
package config

import (
	"errors"
	"fmt"
)

// ClientConfig contains all tunables of the client.
type ClientConfig struct {
	Clock      ClockConfig      `yaml:"clock"`
	Net        NetConfig        `yaml:"net"`
	Containers ContainersConfig `yaml:"containers"`
	Render     RenderConfig     `yaml:"render"`
	Input      InputConfig      `yaml:"input"`
}

// ClockConfig defines the game clock.
type ClockConfig struct {
	Hz int `yaml:"hz"` // Ticks per second
}

// NetConfig defines connection parameters.
type NetConfig struct {
	MaxLine int `yaml:"max_line"` // Carry-over buffer size in bytes, newline included
}

// ContainersConfig defines storage parameters.
type ContainersConfig struct {
	MapOrder uint `yaml:"map_order"` // log2 of the entity map bucket count
}

// RenderConfig defines how world units map onto terminal cells.
type RenderConfig struct {
	ScaleX int `yaml:"scale_x"` // World units per column
	ScaleY int `yaml:"scale_y"` // World units per row
	LabelX int `yaml:"label_x"` // Stats label column
	LabelY int `yaml:"label_y"` // Stats label row
}

// InputConfig defines key bindings and release synthesis.
type InputConfig struct {
	ReleaseAfterTicks int        `yaml:"release_after_ticks"`
	Keys              KeyBinding `yaml:"keys"`
}

// KeyBinding lists terminal key names per logical key.
type KeyBinding struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Shoot []string `yaml:"shoot"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that every value is usable.
func (c ClientConfig) Validate() error {
	switch {
	case c.Clock.Hz <= 0:
		return fmt.Errorf("%w: clock.hz must be positive, got %d", ErrInvalidConfig, c.Clock.Hz)
	case c.Net.MaxLine < 2:
		return fmt.Errorf("%w: net.max_line must be at least 2, got %d", ErrInvalidConfig, c.Net.MaxLine)
	case c.Containers.MapOrder == 0 || c.Containers.MapOrder > 20:
		return fmt.Errorf("%w: containers.map_order must be in 1..20, got %d", ErrInvalidConfig, c.Containers.MapOrder)
	case c.Render.ScaleX <= 0 || c.Render.ScaleY <= 0:
		return fmt.Errorf("%w: render scale must be positive, got %dx%d", ErrInvalidConfig, c.Render.ScaleX, c.Render.ScaleY)
	case c.Input.ReleaseAfterTicks <= 0:
		return fmt.Errorf("%w: input.release_after_ticks must be positive, got %d", ErrInvalidConfig, c.Input.ReleaseAfterTicks)
	}
	return nil
}

// fillDefaults replaces zero values left by a partial YAML file.
func (c *ClientConfig) fillDefaults() {
	d := DefaultClientConfig()
	if c.Clock.Hz == 0 {
		c.Clock.Hz = d.Clock.Hz
	}
	if c.Net.MaxLine == 0 {
		c.Net.MaxLine = d.Net.MaxLine
	}
	if c.Containers.MapOrder == 0 {
		c.Containers.MapOrder = d.Containers.MapOrder
	}
	if c.Render.ScaleX == 0 {
		c.Render.ScaleX = d.Render.ScaleX
	}
	if c.Render.ScaleY == 0 {
		c.Render.ScaleY = d.Render.ScaleY
	}
	if c.Input.ReleaseAfterTicks == 0 {
		c.Input.ReleaseAfterTicks = d.Input.ReleaseAfterTicks
	}
	if len(c.Input.Keys.Left) == 0 {
		c.Input.Keys.Left = d.Input.Keys.Left
	}
	if len(c.Input.Keys.Right) == 0 {
		c.Input.Keys.Right = d.Input.Keys.Right
	}
	if len(c.Input.Keys.Shoot) == 0 {
		c.Input.Keys.Shoot = d.Input.Keys.Shoot
	}
}
