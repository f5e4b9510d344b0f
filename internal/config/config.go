// Package config loads the application settings from an optional YAML
// file layered over each package's defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/gridshot/internal/audio"
	"github.com/ayusman/gridshot/internal/capture"
	"github.com/ayusman/gridshot/internal/detector"
	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/gesture"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// UI modes.
const (
	UIWindow   = "window"
	UITerminal = "tui"
	UIHeadless = "headless"
)

// Defaults for the settings owned by this package.
const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultDBFile   = "gridshot.db"
	DefaultAssetDir = "assets"
	DefaultTitle    = "Gridshot"
)

// ServerConfig controls the HTTP control API.
type ServerConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// StoreConfig controls round history. An empty Path disables recording.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// UIConfig selects the front-end.
type UIConfig struct {
	Mode     string `yaml:"mode"`
	AssetDir string `yaml:"asset_dir"`
	Title    string `yaml:"title"`
	// Gesture starts with gesture control enabled.
	Gesture bool `yaml:"gesture"`
}

// Config is the complete application configuration.
type Config struct {
	// Seed for the simulation. Zero picks a time-based seed.
	Seed int64 `yaml:"seed"`

	Game     game.Config     `yaml:"game"`
	Gesture  gesture.Config  `yaml:"gesture"`
	Camera   capture.Config  `yaml:"camera"`
	Detector detector.Config `yaml:"detector"`
	Audio    audio.Config    `yaml:"audio"`
	Server   ServerConfig    `yaml:"server"`
	Store    StoreConfig     `yaml:"store"`
	UI       UIConfig        `yaml:"ui"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Game:     game.DefaultConfig(),
		Gesture:  gesture.DefaultConfig(),
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Audio:    audio.DefaultConfig(),
		Server: ServerConfig{
			Enabled: true,
			Addr:    DefaultAddr,
		},
		Store: StoreConfig{Path: DefaultDBFile},
		UI: UIConfig{
			Mode:     UIWindow,
			AssetDir: DefaultAssetDir,
			Title:    DefaultTitle,
		},
	}
}

// Load reads path over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document does not set,
// and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game: %w: %w", err, ErrInvalid)
	}

	g := c.Gesture
	switch {
	case g.HistorySize < 1:
		return fmt.Errorf("gesture.history_size must be positive: %w", ErrInvalid)
	case g.DeadZone < 0 || g.MovementThreshold < 0:
		return fmt.Errorf("gesture dead zone and movement threshold must not be negative: %w", ErrInvalid)
	case g.DirectionHold < 0 || g.ShootCooldown < 0:
		return fmt.Errorf("gesture durations must not be negative: %w", ErrInvalid)
	case g.MinFingerAngle >= g.MaxFingerAngle:
		return fmt.Errorf("gesture finger angle range (%v,%v) is empty: %w", g.MinFingerAngle, g.MaxFingerAngle, ErrInvalid)
	case g.MoveInterval < 0:
		return fmt.Errorf("gesture.move_interval must not be negative: %w", ErrInvalid)
	}

	switch {
	case c.Camera.Width <= 0 || c.Camera.Height <= 0:
		return fmt.Errorf("camera size %dx%d invalid: %w", c.Camera.Width, c.Camera.Height, ErrInvalid)
	case c.Camera.FPS <= 0:
		return fmt.Errorf("camera.fps must be positive: %w", ErrInvalid)
	case c.Camera.BlurSize < 0 || (c.Camera.BlurSize > 0 && c.Camera.BlurSize%2 == 0):
		return fmt.Errorf("camera.blur_size must be zero or odd: %w", ErrInvalid)
	}

	d := c.Detector
	switch {
	case d.MaxHands < 1:
		return fmt.Errorf("detector.max_hands must be positive: %w", ErrInvalid)
	case d.MinConfidence < 0 || d.MinConfidence > 1 || d.MinTrackingConf < 0 || d.MinTrackingConf > 1:
		return fmt.Errorf("detector confidences must be within [0,1]: %w", ErrInvalid)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume %v outside [0,1]: %w", c.Audio.Volume, ErrInvalid)
	}

	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required: %w", ErrInvalid)
	}

	switch c.UI.Mode {
	case UIWindow, UITerminal, UIHeadless:
	default:
		return fmt.Errorf("ui.mode %q must be window, tui or headless: %w", c.UI.Mode, ErrInvalid)
	}

	return nil
}
