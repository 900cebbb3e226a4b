package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for malformed or out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults.
const (
	DefaultLogLevel = "warn"
	DefaultDelay    = 400 * time.Millisecond
	DefaultInitial  = 0.5
	DefaultDecay    = 0.9
	DefaultFloor    = 0.0
	DefaultHSpacing = 1
	DefaultVSpacing = 0
)

// Config holds the settings of a play session.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// Seed fixes the random source. Zero picks a random seed.
	Seed    uint64            `mapstructure:"seed" yaml:"seed"`
	Pacing  Pacing            `mapstructure:"pacing" yaml:"pacing"`
	Trigger Trigger           `mapstructure:"trigger" yaml:"trigger"`
	Layout  Layout            `mapstructure:"layout" yaml:"layout"`
	Palette map[string]string `mapstructure:"palette" yaml:"palette"`
}

// Pacing controls the pause before each event.
type Pacing struct {
	Delay time.Duration `mapstructure:"delay" yaml:"delay"`
}

// Trigger holds the default decaying trigger parameters.
type Trigger struct {
	Initial float64 `mapstructure:"initial" yaml:"initial"`
	Decay   float64 `mapstructure:"decay" yaml:"decay"`
	Floor   float64 `mapstructure:"floor" yaml:"floor"`
}

// Layout configures the choice panel. Width 0 detects the terminal width.
type Layout struct {
	HSpacing int `mapstructure:"h_spacing" yaml:"h_spacing"`
	VSpacing int `mapstructure:"v_spacing" yaml:"v_spacing"`
	Width    int `mapstructure:"width" yaml:"width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Pacing:   Pacing{Delay: DefaultDelay},
		Trigger: Trigger{
			Initial: DefaultInitial,
			Decay:   DefaultDecay,
			Floor:   DefaultFloor,
		},
		Layout: Layout{
			HSpacing: DefaultHSpacing,
			VSpacing: DefaultVSpacing,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(cfg.Palette) > 0 {
		palette := make(map[string]string, len(cfg.Palette))
		for actor, color := range cfg.Palette {
			palette[strings.ToLower(actor)] = color
		}
		cfg.Palette = palette
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Pacing.Delay < 0 {
		errs = append(errs, fmt.Errorf("pacing.delay must not be negative, got %s", c.Pacing.Delay))
	}
	for name, v := range map[string]float64{
		"trigger.initial": c.Trigger.Initial,
		"trigger.decay":   c.Trigger.Decay,
		"trigger.floor":   c.Trigger.Floor,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %g", name, v))
		}
	}
	if c.Trigger.Floor > c.Trigger.Initial {
		errs = append(errs, fmt.Errorf("trigger.floor %g exceeds trigger.initial %g", c.Trigger.Floor, c.Trigger.Initial))
	}
	if c.Layout.HSpacing < 0 || c.Layout.VSpacing < 0 {
		errs = append(errs, fmt.Errorf("layout spacing must not be negative"))
	}
	if c.Layout.Width < 0 {
		errs = append(errs, fmt.Errorf("layout.width must not be negative, got %d", c.Layout.Width))
	}
	for actor, color := range c.Palette {
		if !isHexColor(color) {
			errs = append(errs, fmt.Errorf("palette.%s: %q is not a #rgb or #rrggbb color", actor, color))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Color returns the palette color for actor, or fallback.
func (c Config) Color(actor, fallback string) string {
	if color, ok := c.Palette[strings.ToLower(actor)]; ok {
		return color
	}
	return fallback
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
