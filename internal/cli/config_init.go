package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/quantify/internal/config"
)

// newConfigCmd creates the config command group. Its subcommands manage the
// config file themselves, so the group replaces the root setup with logging
// only.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := os.Getenv(config.EnvLogLevel)
			if a.flags.debug {
				level = "debug"
			}
			if err := config.InitLoggerWithWriter(cmd.ErrOrStderr(), level, ""); err != nil {
				return err
			}
			a.logger = config.ComponentLogger("cli")
			return nil
		},
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigValidateCmd(a))
	return cmd
}

// newConfigInitCmd creates the config init command for initializing configuration.
// With --project it writes ./.quantify/config.yaml instead of the global file.
func newConfigInitCmd(a *app) *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

The global file is ~/.quantify/config.yaml unless --config or QUANTIFY_CONFIG
says otherwise. Use --project to create ./.quantify/config.yaml, which is
merged on top of the global file when quantify runs in this directory.`,
		Example: `  # Create global configuration
  quantify config init

  # Create project-local configuration
  quantify config init --project

  # Create configuration, overwriting existing
  quantify config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath()
			if project {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving working directory: %w", err)
				}
				path = filepath.Join(wd, config.DirName, config.FileName)
			}
			if path == "" {
				return errors.New("cannot determine config path, pass --config")
			}

			// Check if config already exists and force isn't set
			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			if err := config.New().Save(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			a.logger.Debug().Str("path", path).Msg("wrote default config")
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create ./.quantify/config.yaml instead of the global file")

	return cmd
}

// newConfigValidateCmd creates the config validate command. It loads the
// global file and any project overlay, and registers the custom units into a
// fresh registry to catch symbol collisions.
func newConfigValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and its custom units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = ""
			}
			cfg, err := config.LoadWithProject(a.configPath(), wd)
			if err != nil {
				return err
			}
			reg, err := newRegistry(cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", cfg.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Custom units: %d (registry holds %d units)\n",
				len(cfg.Units), len(reg.Units()))
			return nil
		},
	}
}
