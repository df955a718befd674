package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gridkit/internal/browser"
	"gridkit/internal/grid"
	"gridkit/internal/logging"
	"gridkit/internal/rules"
	"gridkit/internal/validator"

	"gopkg.in/yaml.v3"
)

// Profiles recognised by the config layer.
const (
	ProfileDevelopment = "development"
	ProfileProduction  = "production"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "gridkit.yaml"

// Config holds all gridkit configuration.
type Config struct {
	// Profile selects environment-dependent defaults (development, production).
	Profile string `yaml:"profile"`

	Grid GridConfig `yaml:"grid"`

	// Validation toggles, one per rule family.
	Validation validator.Options `yaml:"validation"`

	// Thresholds for the rule catalog.
	Rules rules.Thresholds `yaml:"rules"`

	// LogValidation prints the per-component result groups. Nil means
	// "on in development only".
	LogValidation *bool `yaml:"log_validation,omitempty"`

	// AutoFixEnabled adds remediation instructions to the output. Off by default.
	AutoFixEnabled bool `yaml:"auto_fix_enabled"`

	Browser BrowserConfig `yaml:"browser"`

	Watch WatchConfig `yaml:"watch"`

	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig configures the spacing grid.
type GridConfig struct {
	Unit         float64 `yaml:"unit"`
	BaseFontSize float64 `yaml:"base_font_size"`
}

// BrowserConfig configures page audits.
type BrowserConfig struct {
	DebuggerURL       string   `yaml:"debugger_url"`
	Launch            []string `yaml:"launch,omitempty"`
	Headless          bool     `yaml:"headless"`
	ViewportWidth     int      `yaml:"viewport_width"`
	ViewportHeight    int      `yaml:"viewport_height"`
	NavigationTimeout string   `yaml:"navigation_timeout"`
}

// WatchConfig configures --watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Profile: ProfileDevelopment,
		Grid: GridConfig{
			Unit:         grid.DefaultUnit,
			BaseFontSize: grid.DefaultBaseFontSize,
		},
		Validation:     validator.DefaultOptions(),
		Rules:          rules.DefaultThresholds(),
		AutoFixEnabled: false,
		Browser: BrowserConfig{
			Headless:          true,
			ViewportWidth:     1280,
			ViewportHeight:    800,
			NavigationTimeout: "30s",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Malformed numeric or boolean values are ignored and logged.
func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("GRIDKIT_PROFILE"); p != "" {
		c.Profile = strings.ToLower(p)
	}

	if v := os.Getenv("GRIDKIT_GRID_UNIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Grid.Unit = f
		} else {
			logging.BootWarn("ignoring GRIDKIT_GRID_UNIT=%q: %v", v, err)
		}
	}

	if v := os.Getenv("GRIDKIT_BASE_FONT_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Grid.BaseFontSize = f
		} else {
			logging.BootWarn("ignoring GRIDKIT_BASE_FONT_SIZE=%q: %v", v, err)
		}
	}

	if v := os.Getenv("GRIDKIT_LOG_VALIDATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogValidation = &b
		} else {
			logging.BootWarn("ignoring GRIDKIT_LOG_VALIDATION=%q: %v", v, err)
		}
	}

	if url := os.Getenv("GRIDKIT_DEBUGGER_URL"); url != "" {
		c.Browser.DebuggerURL = url
	}
}

// ValidProfiles lists all supported profiles.
var ValidProfiles = []string{ProfileDevelopment, ProfileProduction}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validProfile := false
	for _, p := range ValidProfiles {
		if c.Profile == p {
			validProfile = true
			break
		}
	}
	if !validProfile {
		return fmt.Errorf("invalid profile: %s (valid: %v)", c.Profile, ValidProfiles)
	}

	if _, err := grid.New(c.Grid.Unit); err != nil {
		return fmt.Errorf("grid.unit: %w", err)
	}
	if c.Grid.BaseFontSize <= 0 {
		return fmt.Errorf("grid.base_font_size must be positive, got %v", c.Grid.BaseFontSize)
	}
	if c.Rules.TouchMinimum > c.Rules.TouchRecommended {
		return fmt.Errorf("rules.touch_minimum (%v) exceeds rules.touch_recommended (%v)",
			c.Rules.TouchMinimum, c.Rules.TouchRecommended)
	}
	if c.Rules.LineMinChars > c.Rules.LineMaxChars {
		return fmt.Errorf("rules.line_min_chars (%d) exceeds rules.line_max_chars (%d)",
			c.Rules.LineMinChars, c.Rules.LineMaxChars)
	}
	if c.Rules.AnimationMinMillis > c.Rules.AnimationMaxMillis {
		return fmt.Errorf("rules.animation_min_ms (%d) exceeds rules.animation_max_ms (%d)",
			c.Rules.AnimationMinMillis, c.Rules.AnimationMaxMillis)
	}
	if len(c.Rules.ZLayers) == 0 {
		return fmt.Errorf("rules.z_layers must not be empty")
	}

	return nil
}

// IsDevelopment reports whether the development profile is active.
func (c *Config) IsDevelopment() bool {
	return c.Profile == ProfileDevelopment
}

// ShouldLogValidation resolves log_validation against the profile default.
func (c *Config) ShouldLogValidation() bool {
	if c.LogValidation != nil {
		return *c.LogValidation
	}
	return c.IsDevelopment()
}

// GridModel builds the grid model for the configured unit.
func (c *Config) GridModel() (grid.Model, error) {
	return grid.New(c.Grid.Unit)
}

// ValidatorOptions returns the validation toggles with the configured base font size.
func (c *Config) ValidatorOptions() validator.Options {
	opts := c.Validation
	opts.BaseFontSize = c.Grid.BaseFontSize
	return opts
}

// GetNavigationTimeout returns the browser navigation timeout as a duration.
func (c *Config) GetNavigationTimeout() time.Duration {
	d, err := time.ParseDuration(c.Browser.NavigationTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}

// BrowserOptions maps the browser section onto the session manager config.
func (c *Config) BrowserOptions() browser.Config {
	return browser.Config{
		DebuggerURL:       c.Browser.DebuggerURL,
		Launch:            c.Browser.Launch,
		Headless:          c.Browser.Headless,
		ViewportWidth:     c.Browser.ViewportWidth,
		ViewportHeight:    c.Browser.ViewportHeight,
		NavigationTimeout: c.GetNavigationTimeout(),
	}
}
