package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-reminder/internal/config"
	"github.com/oshokin/alarm-reminder/internal/service/remind"
)

// writeSettings saves a settings file with notification and tone turned off and loads it back.
func writeSettings(t *testing.T) *config.Config {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")

	settings := config.Default()
	settings.Notification.Enabled = false
	settings.Sound.Enabled = false

	require.NoError(t, config.Save(afero.NewOsFs(), cfgPath, settings))

	loaded, err := config.Load(afero.NewOsFs(), cfgPath)
	require.NoError(t, err)

	return loaded
}

// TestRemind_FiresOnWallClock runs the headless command against a target two seconds away.
func TestRemind_FiresOnWallClock(t *testing.T) {
	t.Parallel()

	target := time.Now().Add(2 * time.Second).Truncate(time.Second)
	if target.Day() != time.Now().Day() {
		t.Skip("too close to midnight for a time-of-day target")
	}

	cfg := writeSettings(t)
	done := make(chan error, 1)

	go func() {
		done <- remind.Run(context.Background(), &remind.Options{
			Config: cfg,
			Target: target.Format("15:04:05"),
			Mute:   true,
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
		require.False(t, time.Now().Before(target))
	case <-time.After(5 * time.Second):
		require.Fail(t, "reminder did not fire")
	}
}

// TestRemind_CancelReturns clears the reminder when the context ends.
func TestRemind_CancelReturns(t *testing.T) {
	t.Parallel()

	cfg := writeSettings(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- remind.Run(ctx, &remind.Options{
			Config: cfg,
			Target: time.Now().Add(time.Hour).Format("2006-01-02 15:04"),
		})
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not return after cancel")
	}
}
