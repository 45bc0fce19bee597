package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Sound Wave - Space: start/stop, O: open audio, Esc/Q: quit"

	TicksPerSecond = 60

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	BandCount = 4
)

// DefaultPalette holds the band colors: pink, teal, blue and purple.
var DefaultPalette = []string{"#ff4081", "#009688", "#2196f3", "#9c27b0"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Width    int      `yaml:"width,omitempty"`
	Height   int      `yaml:"height,omitempty"`
	Title    string   `yaml:"title,omitempty"`
	TPS      int      `yaml:"tps,omitempty"`
	Bands    int      `yaml:"bands,omitempty"`
	Palette  []string `yaml:"palette,omitempty"`
	Seed     uint64   `yaml:"seed,omitempty"`
	LogLevel string   `yaml:"log_level,omitempty"`

	Audio     string `yaml:"audio,omitempty"`
	AutoStart bool   `yaml:"autostart,omitempty"`
}

func Default() *Config {
	return &Config{
		Width:    WindowWidth,
		Height:   WindowHeight,
		Title:    WindowTitle,
		TPS:      TicksPerSecond,
		Bands:    BandCount,
		Palette:  append([]string(nil), DefaultPalette...),
		LogLevel: "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for values the engine and window cannot use.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	}
	if c.Bands < 1 {
		return fmt.Errorf("%w: bands %d", ErrInvalid, c.Bands)
	}
	if len(c.Palette) != c.Bands {
		return fmt.Errorf("%w: %d palette colors for %d bands", ErrInvalid, len(c.Palette), c.Bands)
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Colors parses the palette.
func (c *Config) Colors() ([]colorful.Color, error) {
	colors := make([]colorful.Color, len(c.Palette))
	for i, hex := range c.Palette {
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: palette[%d] %q: %v", ErrInvalid, i, hex, err)
		}
		colors[i] = col
	}
	return colors, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, name)
	}
	return level, nil
}
