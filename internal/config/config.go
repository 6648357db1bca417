package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/logger"
)

// Config holds the alarm-reminder settings.
type Config struct {
	// TimeLayout is the Go layout tried first when parsing a target.
	TimeLayout string `yaml:"time_layout"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs while the interactive UI owns the terminal.
	LogFile string `yaml:"log_file"`
	// Notification configures the desktop notification.
	Notification Notification `yaml:"notification"`
	// Sound configures the alert tone.
	Sound Sound `yaml:"sound"`
}

// Notification configures the desktop notification.
type Notification struct {
	// Enabled allows system-level notifications; otherwise the inline fallback is used.
	Enabled bool `yaml:"enabled"`
	// Title is the notification title.
	Title string `yaml:"title"`
}

// Sound switches the alert tone; the tone itself is fixed.
type Sound struct {
	// Enabled plays the tone on fire.
	Enabled bool `yaml:"enabled"`
	// Player overrides the audio player command; the WAV path is appended.
	Player string `yaml:"player"`
}

const (
	// DefaultConfigFilename is the default filename for reminder settings.
	DefaultConfigFilename = "alarm-reminder-settings.yaml"

	// DefaultLogFilename is the default log file for the interactive UI.
	DefaultLogFilename = "alarm-reminder.log"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("unknown log level")
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TimeLayout: reminder.DefaultInputLayout,
		LogLevel:   "info",
		LogFile:    DefaultLogFilename,
		Notification: Notification{
			Enabled: true,
			Title:   "Alarm Reminder",
		},
		Sound: Sound{
			Enabled: true,
		},
	}
}

// Load reads settings from path on fs, layered over Default.
// When path is empty the default filename is used and may be absent.
func Load(fs afero.Fs, path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := afero.ReadFile(fs, filepath.Clean(path))
	switch {
	case err == nil:
	case optional && errors.Is(err, os.ErrNotExist):
		return cfg, nil
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to path on fs.
func Save(fs afero.Fs, path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err = afero.WriteFile(fs, filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the log level and fills blank fields with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if cfg.TimeLayout == "" {
		cfg.TimeLayout = defaults.TimeLayout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	if cfg.LogFile == "" {
		cfg.LogFile = defaults.LogFile
	}

	if cfg.Notification.Title == "" {
		cfg.Notification.Title = defaults.Notification.Title
	}

	return nil
}
