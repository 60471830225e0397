package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/rshade/quantify/internal/units"
)

// Config file locations and environment overrides.
const (
	// DirName is the directory holding the config file, under $HOME or a project root.
	DirName = ".quantify"

	// FileName is the config file name inside DirName.
	FileName = "config.yaml"

	// EnvConfigPath overrides the global config file path.
	EnvConfigPath = "QUANTIFY_CONFIG"

	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "QUANTIFY_LOG_LEVEL"
)

// Config schema versions.
const (
	// CurrentVersion is written by New and by `quantify config init`.
	CurrentVersion = "1.0.0"

	// SupportedVersions is the semver constraint a config file's version must satisfy.
	SupportedVersions = "^1"
)

// ErrUnsupportedVersion indicates a config file written for an incompatible schema.
var ErrUnsupportedVersion = errors.New("unsupported config version")

//nolint:gochecknoglobals // Compiled once, read-only.
var symbolPattern = regexp.MustCompile(`^\w+$`)

// configValidate is the validator instance for config types.
// Initialized in init() with custom validators.
//
//nolint:gochecknoglobals // Shared validator, safe for concurrent use.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()

	// Unit symbols must be tokens the unit string parser can read back.
	_ = configValidate.RegisterValidation("unitsymbol", func(fl validator.FieldLevel) bool {
		return symbolPattern.MatchString(fl.Field().String())
	})
}

// Config is the complete quantify configuration.
//
// YAML Location: ~/.quantify/config.yaml, optionally overlaid by
// ./.quantify/config.yaml.
//
// Example:
//
//	version: 1.0.0
//	logging:
//	  level: debug
//	output:
//	  format: text
//	  grouped: true
//	units:
//	  - symbol: nmi
//	    name: nautical mile
//	    base: m
//	    factor: 1852
type Config struct {
	Version string        `yaml:"version" json:"version" validate:"required"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Units   []CustomUnit  `yaml:"units,omitempty" json:"units,omitempty" validate:"dive"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	// Level is a zerolog level name. Defaults to "info".
	Level string `yaml:"level" json:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`

	// File additionally writes logs to this path when set.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// OutputConfig controls how the CLI renders quantities.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format" json:"format" validate:"omitempty,oneof=text json"`

	// HTML renders exponents as <sup> elements.
	HTML bool `yaml:"html,omitempty" json:"html,omitempty"`

	// Grouped inserts thousand separators into magnitudes.
	Grouped bool `yaml:"grouped,omitempty" json:"grouped,omitempty"`
}

// CustomUnit declares a unit relative to a registered base unit:
// value_in_unit * Factor + Offset = value_in_base.
type CustomUnit struct {
	Symbol string  `yaml:"symbol" json:"symbol" validate:"required,unitsymbol"`
	Name   string  `yaml:"name" json:"name" validate:"required"`
	Base   string  `yaml:"base" json:"base" validate:"required,unitsymbol"`
	Factor float64 `yaml:"factor" json:"factor" validate:"required"`
	Offset float64 `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: "text"},
	}
}

// Load reads the config file at path on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := New()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWithProject loads the global config at path (defaults when the file is
// missing) and shallow-merges projectDir/.quantify/config.yaml on top when it
// exists. An empty projectDir skips the overlay.
func LoadWithProject(path, projectDir string) (*Config, error) {
	cfg := New()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, loadErr := Load(path)
			if loadErr != nil {
				return nil, loadErr
			}
			cfg = loaded
		}
	}

	if projectDir == "" {
		return cfg, nil
	}
	overlayPath := filepath.Join(projectDir, DirName, FileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error, use global settings.
		return cfg, nil
	}
	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", overlayPath, err)
	}

	log.Debug().
		Str("component", "config").
		Str("overlay_path", overlayPath).
		Msg("merged project config")
	return cfg, nil
}

// DefaultPath returns $QUANTIFY_CONFIG, or ~/.quantify/config.yaml. It returns
// an empty string when neither can be determined.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName, FileName)
}

// Validate checks field constraints and the schema version.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return err
	}

	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, c.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// ApplyUnits registers every custom unit into reg, in declaration order.
// It stops at the first registration error.
func (c *Config) ApplyUnits(reg *units.Registry) error {
	for _, cu := range c.Units {
		conv := units.Affine(cu.Factor, cu.Offset)
		if _, err := reg.RegisterUnit(cu.Symbol, cu.Name, cu.Base, conv); err != nil {
			return fmt.Errorf("custom unit %q: %w", cu.Symbol, err)
		}
	}
	if len(c.Units) > 0 {
		log.Debug().
			Str("component", "config").
			Int("count", len(c.Units)).
			Msg("registered custom units")
	}
	return nil
}

// Save writes the config to path as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
