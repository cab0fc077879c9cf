package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"current-weather/config"
	"current-weather/datasource"
	"current-weather/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ExitError carries a non-zero exit code out of the command.
// When Err is set it is printed before exiting.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// FetcherFactory builds the fetcher used by the command
type FetcherFactory func(cfg *config.Config, logger *zap.Logger) datasource.Fetcher

// App holds everything the command takes from the process
type App struct {
	// LookupEnv is consulted once per invocation, usually os.LookupEnv
	LookupEnv func(string) (string, bool)
	Stdout    io.Writer
	Stderr    io.Writer

	// NewFetcher defaults to DefaultFetcher
	NewFetcher FetcherFactory
}

// DefaultFetcher returns the OpenWeatherMap fetcher
func DefaultFetcher(cfg *config.Config, logger *zap.Logger) datasource.Fetcher {
	return datasource.NewOpenWeatherMapFetcher(cfg.BaseURL, cfg.Timeout.Duration, logger)
}

func exitCode(code int) error {
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// NewRootCommand creates the current-weather command
func NewRootCommand(app App) *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "current-weather CITY",
		Short: "Get the current weather for a city",
		Long: `A simple CLI to get the current weather for a city.

The OpenWeatherMap API key is read from the OPENWEATHER_API_KEY environment
variable (a .env file in the working directory is loaded first).`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			lookup := app.LookupEnv
			if lookup == nil {
				lookup = os.LookupEnv
			}

			// a missing credential is reported before any configuration is loaded
			if key, _ := lookup(config.EnvAPIKey); key == "" {
				return exitCode(NewDriver(nil, "", cmd.OutOrStdout(), nil).Run(cmd.Context(), args[0]))
			}

			cfg, err := loadConfig(configFile, lookup)
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			if verbose {
				cfg.LogLevel = "debug"
			}

			logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				logger, _ = logging.New(config.DefaultConfig().LogLevel, cmd.ErrOrStderr())
				logger.Warn("Falling back to the default log level", zap.Error(err))
			}
			defer logger.Sync() //nolint:errcheck

			if err := cfg.APIKeyWarning(); err != nil {
				logger.Warn("API key does not look like an OpenWeatherMap key", zap.Error(err))
			}

			newFetcher := app.NewFetcher
			if newFetcher == nil {
				newFetcher = DefaultFetcher
			}

			driver := NewDriver(newFetcher(cfg, logger), cfg.APIKey, cmd.OutOrStdout(), logger)
			return exitCode(driver.Run(cmd.Context(), args[0]))
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to an optional JSON configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print debug diagnostics to stderr")

	if app.Stdout != nil {
		cmd.SetOut(app.Stdout)
	}
	if app.Stderr != nil {
		cmd.SetErr(app.Stderr)
	}

	return cmd
}

// Execute runs the command with args and returns the process exit code.
// Usage errors exit with 2.
func Execute(ctx context.Context, app App, args []string) int {
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCommand(app)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	return 2
}

func loadConfig(filename string, lookup func(string) (string, bool)) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if filename != "" {
		var err error
		if cfg, err = config.LoadConfig(filename); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(lookup)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
