package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/buildinfo"
	"github.com/cleared-dev/fintrack/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "fintrack",
		Short:   "Personal finance tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")

	env := &environment{configPath: &configPath, logLevel: &logLevel}
	rootCmd.AddCommand(newImportCommand(env))
	rootCmd.AddCommand(newShellCommand(env))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// environment resolves the config and logger shared by every subcommand
// once flags have been parsed.
type environment struct {
	configPath *string
	logLevel   *string
}

func (e *environment) load(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadOrDefault(*e.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level := cfg.Log.Level
	if *e.logLevel != "" {
		level = *e.logLevel
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
