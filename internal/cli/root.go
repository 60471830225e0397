package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/quantify/internal/config"
	"github.com/rshade/quantify/internal/quantity"
	"github.com/rshade/quantify/internal/units"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

// ErrInvalidOutput is returned when --output names an unknown format.
var ErrInvalidOutput = errors.New("invalid output format")

// isTerminal checks if the given writer is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	debug      bool
	html       bool
	grouped    bool
	output     string
}

// app is the per-invocation state built by the root command before any
// subcommand runs.
type app struct {
	flags  rootFlags
	cfg    *config.Config
	reg    *units.Registry
	logger zerolog.Logger
	runID  string
	format quantity.FormatOptions
	output string
}

// NewRootCmd creates the root Cobra command for the quantify CLI.
// It loads configuration, wires up logging and the unit registry, and adds
// the convert, parse, calc, units, batch and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "quantify",
		Short:   "Physical quantities with units",
		Long:    "quantify: convert, parse and combine physical quantities expressed in SI and derived units",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			config.CloseLogFile()
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&a.flags.configPath, "config", "",
		"config file (default $QUANTIFY_CONFIG or ~/.quantify/config.yaml)")
	cmd.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&a.flags.html, "html", false, "render exponents as <sup> elements")
	cmd.PersistentFlags().BoolVar(&a.flags.grouped, "grouped", false, "insert thousand separators into magnitudes")
	cmd.PersistentFlags().StringVarP(&a.flags.output, "output", "o", "", "output format: text or json")

	cmd.AddCommand(
		newConvertCmd(a), newParseCmd(a), newCalcCmd(a),
		newUnitsCmd(a), newBatchCmd(a), newConfigCmd(a),
	)

	return cmd
}

const rootCmdExample = `  # Convert a temperature
  quantify convert 60 cel K

  # Convert a quantity given as text
  quantify convert "2 m/s" --to km/hr

  # Show the unit powers of an expression
  quantify parse "m kg/s^2"

  # Multiply two quantities
  quantify calc "2 m/s" "*" "4 s"

  # List every length unit
  quantify units --quality length

  # Convert a file of quantities, one per line
  quantify batch lengths.txt --to ft`

// configPath resolves the global config file path from --config or the environment.
func (a *app) configPath() string {
	if a.flags.configPath != "" {
		return a.flags.configPath
	}
	return config.DefaultPath()
}

// setup loads configuration, initializes the logger and builds the registry.
// CLI flags override the config file, which overrides the defaults.
func (a *app) setup(cmd *cobra.Command) error {
	projectDir, err := os.Getwd()
	if err != nil {
		projectDir = ""
	}

	cfg, err := config.LoadWithProject(a.configPath(), projectDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Logging.Level
	if envLevel := os.Getenv(config.EnvLogLevel); envLevel != "" {
		level = envLevel
	}
	if a.flags.debug {
		level = "debug"
	}
	if err = config.InitLoggerWithWriter(cmd.ErrOrStderr(), level, cfg.Logging.File); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not open log file: %v\n", err)
	}

	a.runID = ulid.Make().String()
	a.logger = config.ComponentLogger("cli").With().Str("run_id", a.runID).Logger()

	if a.reg, err = newRegistry(cfg); err != nil {
		return err
	}

	a.format = quantity.FormatOptions{
		HTML:    cfg.Output.HTML || a.flags.html,
		Grouped: cfg.Output.Grouped || a.flags.grouped,
	}
	a.output = cfg.Output.Format
	if a.flags.output != "" {
		a.output = a.flags.output
	}
	if a.output == "" {
		a.output = outputText
	}
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("%w: %q (want text or json)", ErrInvalidOutput, a.output)
	}

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("output", a.output).
		Int("units", len(a.reg.Units())).
		Msg("command started")
	return nil
}

// newRegistry returns an SI registry extended with the custom units of cfg.
func newRegistry(cfg *config.Config) (*units.Registry, error) {
	reg := units.NewSI()
	if err := cfg.ApplyUnits(reg); err != nil {
		return nil, fmt.Errorf("loading custom units: %w", err)
	}
	return reg, nil
}
