package zoompan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. ZOOMPAN_MIN_ZOOM.
const EnvPrefix = "ZOOMPAN"

// DefaultTickPeriod is the reference frame period (about 59 Hz).
const DefaultTickPeriod = 17 * time.Millisecond

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config controls zoom sensitivity, limits, tick rate and panning.
type Config struct {
	// ZoomStep is the zoom change per wheel notch (0.1 = 10%).
	ZoomStep float64 `yaml:"zoom_step" envconfig:"ZOOM_STEP"`
	// MinZoom is the zoom floor; must be positive.
	MinZoom float64 `yaml:"min_zoom" envconfig:"MIN_ZOOM"`
	// MaxZoom is the zoom ceiling. Zero leaves zoom-in unbounded.
	MaxZoom float64 `yaml:"max_zoom" envconfig:"MAX_ZOOM"`
	// TickPeriod is the scheduler period.
	TickPeriod time.Duration `yaml:"tick_period" envconfig:"TICK_PERIOD"`
	// PanButton is the button whose drags pan the view.
	PanButton MouseButton `yaml:"pan_button" envconfig:"PAN_BUTTON"`
	// ResetDuration is the length of the ResetView animation. Zero snaps.
	ResetDuration time.Duration `yaml:"reset_duration" envconfig:"RESET_DURATION"`
	// Debug enables per-tick stats on stderr.
	Debug bool `yaml:"debug" envconfig:"DEBUG"`
}

// DefaultConfig returns the reference behavior: 10% per notch, floor 0.01,
// no ceiling, 17ms ticks, right-button panning.
func DefaultConfig() Config {
	return Config{
		ZoomStep:      DefaultZoomStep,
		MinZoom:       DefaultMinZoom,
		TickPeriod:    DefaultTickPeriod,
		PanButton:     MouseButtonRight,
		ResetDuration: 300 * time.Millisecond,
	}
}

// LoadConfig starts from DefaultConfig, overlays the YAML file at path (if
// path is non-empty) and then any ZOOMPAN_* environment variables. The
// result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConfig overlays YAML data on DefaultConfig and validates the result.
// Environment variables are not consulted.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.decodeYAML(data); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) decodeYAML(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.ZoomStep <= 0:
		return fmt.Errorf("%w: zoom_step must be positive, got %v", ErrInvalidConfig, c.ZoomStep)
	case c.MinZoom <= 0:
		return fmt.Errorf("%w: min_zoom must be positive, got %v", ErrInvalidConfig, c.MinZoom)
	case c.MaxZoom < 0:
		return fmt.Errorf("%w: max_zoom must not be negative, got %v", ErrInvalidConfig, c.MaxZoom)
	case c.MaxZoom > 0 && c.MaxZoom < c.MinZoom:
		return fmt.Errorf("%w: max_zoom %v is below min_zoom %v", ErrInvalidConfig, c.MaxZoom, c.MinZoom)
	case c.TickPeriod <= 0:
		return fmt.Errorf("%w: tick_period must be positive, got %v", ErrInvalidConfig, c.TickPeriod)
	case c.ResetDuration < 0:
		return fmt.Errorf("%w: reset_duration must not be negative, got %v", ErrInvalidConfig, c.ResetDuration)
	case c.PanButton > MouseButtonMiddle:
		return fmt.Errorf("%w: unknown pan_button %d", ErrInvalidConfig, c.PanButton)
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
