package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "MEMLINK"

	keyConfig    = "config"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
)

type baseConfiguration struct {
	CfgFile   string
	LogLevel  string
	LogFormat string

	// stderr receives log output; tests swap it.
	stderr io.Writer
	log    zerolog.Logger
}

// App is the memlink command tree with its shared configuration.
type App struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

// New creates the memlink command tree.
func New() *App {
	config := &baseConfiguration{stderr: os.Stderr}
	baseCmd := &cobra.Command{
		Use:           "memlink",
		Short:         "Inspect and rearrange byte buffers in place",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	baseCmd.PersistentFlags().StringVar(&config.CfgFile, keyConfig, "", "config file (yaml); flags override it, MEMLINK_* env vars fill unset flags")
	baseCmd.PersistentFlags().StringVar(&config.LogLevel, keyLogLevel, "info", "logging level, one of: debug, info, warn, error")
	baseCmd.PersistentFlags().StringVar(&config.LogFormat, keyLogFormat, "console", "log format, one of: console, json")

	baseCmd.AddCommand(newShiftCmd(config))
	baseCmd.AddCommand(newBenchCmd(config))
	return &App{baseCmd: baseCmd, baseConfig: config}
}

// Execute runs the application with args (without the program name).
func (a *App) Execute(ctx context.Context, args []string) error {
	a.baseCmd.SetArgs(args)
	return a.baseCmd.ExecuteContext(ctx)
}

func (a *App) setOutput(stdout, stderr io.Writer) {
	a.baseCmd.SetOut(stdout)
	a.baseCmd.SetErr(stderr)
	a.baseConfig.stderr = stderr
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error
	if err := config.initializeConfig(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}
	if err := config.initLogger(); err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	}
	return errors.Join(errs...)
}

func (config *baseConfiguration) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	if config.CfgFile != "" {
		v.SetConfigFile(config.CfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindFlagErr []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyConfig {
			return
		}
		// Environment variables can't have dashes in them, so bind them to their equivalent
		// keys with underscores, e.g. --log-level to MEMLINK_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
				return
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("setting flag %q value: %w", f.Name, err))
				return
			}
		}
	})
	return errors.Join(bindFlagErr...)
}
