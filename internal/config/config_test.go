package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestValidate checks the log level and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Bad log level.
	cfg := Default()
	cfg.LogLevel = "chatty"
	require.ErrorIs(t, Validate(cfg), errInvalidLogLevel)

	// Blanks are filled.
	cfg = Default()
	cfg.TimeLayout = ""
	cfg.LogFile = ""
	cfg.Notification.Title = ""

	require.NoError(t, Validate(cfg))
	require.Equal(t, Default(), cfg)
}

// TestLoad_MissingDefaultFile falls back to defaults only for the implicit path.
func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = Load(fs, "/etc/custom.yaml")
	require.Error(t, err)
}

// TestLoad_PartialFileKeepsDefaults layers a sparse file over the defaults.
func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	contents := "sound:\n  enabled: false\nnotification:\n  title: Tea is ready\n"
	require.NoError(t, afero.WriteFile(fs, "/settings.yaml", []byte(contents), DefaultFilePermissions))

	cfg, err := Load(fs, "/settings.yaml")
	require.NoError(t, err)
	require.False(t, cfg.Sound.Enabled)
	require.Empty(t, cfg.Sound.Player)
	require.Equal(t, "Tea is ready", cfg.Notification.Title)
	require.True(t, cfg.Notification.Enabled)
	require.Equal(t, Default().TimeLayout, cfg.TimeLayout)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/home/user/settings.yaml"

	settings := Default()
	settings.TimeLayout = "02.01.2006 15:04"
	settings.Sound.Player = "mpv --really-quiet"
	settings.Notification.Enabled = false

	require.NoError(t, Save(fs, path, settings))

	loaded, err := Load(fs, path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	require.Equal(t, DefaultFilePermissions, int(info.Mode().Perm()))

	require.ErrorIs(t, Save(fs, path, nil), errConfigIsNotSet)
}

// TestLoad_IgnoresToneFields keeps the fixed tone even when a file tries to shape it.
func TestLoad_IgnoresToneFields(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	contents := "sound:\n  enabled: true\n  duration: 14h\n  volume: 1\n  frequency_hz: 20000\n  player: mpv\n"
	require.NoError(t, afero.WriteFile(fs, "/settings.yaml", []byte(contents), DefaultFilePermissions))

	cfg, err := Load(fs, "/settings.yaml")
	require.NoError(t, err)
	require.Equal(t, Sound{Enabled: true, Player: "mpv"}, cfg.Sound)
}
