package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-reminder/internal/clock"
	"github.com/oshokin/alarm-reminder/internal/config"
	"github.com/oshokin/alarm-reminder/internal/logger"
	"github.com/oshokin/alarm-reminder/internal/service/remind"
	"github.com/oshokin/alarm-reminder/internal/ui"
	"github.com/oshokin/alarm-reminder/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the log level from the configuration file.
	logLevel string
	// mute skips the alert tone.
	mute bool

	// rootCmd represents the interactive reminder form.
	rootCmd = &cobra.Command{
		Use:   "alarm-reminder",
		Short: "Set a one-off reminder and get alerted when the time comes.",
		Long: `Interactive reminder: type a date and time, press enter, and wait.

When the time is reached a desktop notification is shown (or an inline message
if notifications are unavailable) and a short tone is played.
Press ctrl+x to clear the pending reminder and esc to quit.

Accepted input: the layout from the settings file ("2006-01-02 15:04" by default),
RFC 3339, "2006-01-02T15:04", or a time of day such as "18:30" for today.
Logs go to the log file from the settings while the form is open.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := loadSettings()
			if err != nil {
				return err
			}

			// The form owns the terminal, so logs go to a file.
			fileLogger, closeLog, err := logger.NewFile(cfg.LogFile)
			if err != nil {
				return err
			}

			defer func() {
				_ = closeLog()
			}()

			logger.SetLogger(fileLogger)
			ctx = logger.WithName(logger.ToContext(ctx, fileLogger), "alarm-reminder")

			warnAboutOtherInstances(ctx)

			wallClock := clock.NewReal()
			defer wallClock.Stop()

			return ui.Run(ctx, ui.Config{
				Clock:  wallClock,
				Timers: wallClock,
				Layout: cfg.TimeLayout,
				Notify: remind.NotifyOptions(cfg),
				Player: remind.TonePlayer(cfg, mute),
			})
		},
	}
)

// Execute runs the alarm-reminder CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(atCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings reads the settings file and applies the log level.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	if lvl, ok := logger.ParseLogLevel(level); ok {
		logger.SetLevel(lvl)
	}

	return cfg, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (default "+config.DefaultConfigFilename+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Hidden mute flag to skip the tone.
	rootCmd.PersistentFlags().BoolVarP(&mute, "mute", "m", false, "do not play the alert tone")

	err := rootCmd.PersistentFlags().MarkHidden("mute")
	if err != nil {
		panic(err)
	}
}
