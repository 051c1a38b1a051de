package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/goWinMouse/host"
	"github.com/goWinMouse/keymaps"
)

const DefaultPath = "/etc/goWinMouse/config.toml"

type Config struct {
	Log     LogConfig     `toml:"log"`
	Devices DevicesConfig `toml:"devices"`
	Keys    KeysConfig    `toml:"keys"`
	Pointer PointerConfig `toml:"pointer"`
}

type LogConfig struct {
	Path  string `toml:"path"`
	Debug bool   `toml:"debug"`
}

type DevicesConfig struct {
	Names []string `toml:"names"`
}

// KeysConfig overrides the built-in key mapping. Zero means keep the default.
type KeysConfig struct {
	Command    uint16 `toml:"command"`
	Mouse      uint16 `toml:"mouse"`
	Left       uint16 `toml:"left"`
	Right      uint16 `toml:"right"`
	Up         uint16 `toml:"up"`
	Down       uint16 `toml:"down"`
	Tab        uint16 `toml:"tab"`
	RightCtrl  uint16 `toml:"right_ctrl"`
	RightShift uint16 `toml:"right_shift"`
}

type PointerConfig struct {
	MaxSpeed     float64 `toml:"max_speed"`
	SpeedMulti   float64 `toml:"speed_multi"`
	Acceleration float64 `toml:"acceleration"`
	Friction     float64 `toml:"friction"`
	TickMS       int     `toml:"tick_ms"`
}

func Default() Config {
	p := host.DefaultPointerSettings()
	return Config{
		Log: LogConfig{Path: "/var/log/goWinMouse.log"},
		Devices: DevicesConfig{Names: []string{
			"AT Translated Set 2 keyboard",
			"Keychron Keychron Q1",
		}},
		Pointer: PointerConfig{
			MaxSpeed:     p.MaxSpeed,
			SpeedMulti:   p.SpeedMulti,
			Acceleration: p.Acceleration,
			Friction:     p.Friction,
			TickMS:       16, // ~60fps
		},
	}
}

// Load reads path on top of the defaults. A missing or empty file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, errors.New("config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Devices.Names) == 0 {
		return errors.New("devices.names must list at least one device")
	}
	p := c.Pointer
	if p.MaxSpeed < 1 {
		return fmt.Errorf("pointer.max_speed must be at least 1, got %v", p.MaxSpeed)
	}
	if p.SpeedMulti <= 0 {
		return fmt.Errorf("pointer.speed_multi must be positive, got %v", p.SpeedMulti)
	}
	if p.Acceleration <= 0 {
		return fmt.Errorf("pointer.acceleration must be positive, got %v", p.Acceleration)
	}
	if p.Friction <= 0 || p.Friction > 1 {
		return fmt.Errorf("pointer.friction must be in (0, 1], got %v", p.Friction)
	}
	if p.TickMS <= 0 {
		return fmt.Errorf("pointer.tick_ms must be positive, got %d", p.TickMS)
	}
	// Overrides land on every built-in mapping, so check the merged triggers
	for _, base := range []keymaps.KeyMapping{keymaps.GetExternalKeyMapping(), keymaps.GetLaptopKeyMapping()} {
		m := base.Override(c.Mapping())
		if m.CommandKey == m.MouseKey {
			return fmt.Errorf("keys.command and keys.mouse are both %d", m.CommandKey)
		}
	}
	return nil
}

// Mapping returns the key overrides as a keymaps.KeyMapping
func (c Config) Mapping() keymaps.KeyMapping {
	k := c.Keys
	return keymaps.KeyMapping{
		CommandKey:    k.Command,
		MouseKey:      k.Mouse,
		LeftKey:       k.Left,
		RightKey:      k.Right,
		UpKey:         k.Up,
		DownKey:       k.Down,
		TabKey:        k.Tab,
		RightCtrlKey:  k.RightCtrl,
		RightShiftKey: k.RightShift,
	}
}

func (c Config) PointerSettings() host.PointerSettings {
	return host.PointerSettings{
		MaxSpeed:     c.Pointer.MaxSpeed,
		SpeedMulti:   c.Pointer.SpeedMulti,
		Acceleration: c.Pointer.Acceleration,
		Friction:     c.Pointer.Friction,
	}
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Pointer.TickMS) * time.Millisecond
}
