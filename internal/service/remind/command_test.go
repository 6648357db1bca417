package remind

import (
	"context"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-reminder/internal/clock"
	"github.com/oshokin/alarm-reminder/internal/config"
	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/service/audio"
	"github.com/oshokin/alarm-reminder/internal/service/notify"
)

// countingPlayer counts tone plays.
type countingPlayer struct {
	plays atomic.Int32
}

func (c *countingPlayer) Play(context.Context) error {
	c.plays.Add(1)

	return nil
}

func newDeps(m *clock.Manual, inline *atomic.Int32, player *countingPlayer) *dependencies {
	deps := &dependencies{
		clock:  m,
		timers: m,
		notifier: notify.New(notify.Options{
			GOOS:     "linux",
			LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
			Fallback: func(string) { inline.Add(1) },
		}),
		layout: reminder.DefaultInputLayout,
	}

	// Keep the interface nil when muted.
	if player != nil {
		deps.player = player
	}

	return deps
}

// TestRun_FiresAndReturns drives a reminder to completion on a manual clock.
func TestRun_FiresAndReturns(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local)
	m := clock.NewManual(start)

	var inline atomic.Int32

	player := new(countingPlayer)
	done := make(chan error, 1)

	go func() {
		done <- run(context.Background(), newDeps(m, &inline, player), "2026-02-01 09:01")
	}()

	require.Eventually(t, func() bool { return m.Pending() == 3 }, time.Second, time.Millisecond)

	m.Advance(time.Minute)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "run did not return after firing")
	}

	require.Equal(t, int32(1), inline.Load())
	require.Equal(t, int32(1), player.plays.Load())
	require.Zero(t, m.Pending())
}

// TestRun_CancelClearsReminder returns without alerting when the context ends.
func TestRun_CancelClearsReminder(t *testing.T) {
	t.Parallel()

	m := clock.NewManual(time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local))

	var inline atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- run(ctx, newDeps(m, &inline, nil), "10:00")
	}()

	require.Eventually(t, func() bool { return m.Pending() == 3 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	m.Advance(2 * time.Hour)
	require.Zero(t, inline.Load())
	require.Zero(t, m.Pending())
}

// TestRun_Rejections reports invalid and past targets.
func TestRun_Rejections(t *testing.T) {
	t.Parallel()

	m := clock.NewManual(time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local))

	var inline atomic.Int32

	err := run(context.Background(), newDeps(m, &inline, nil), "")
	require.ErrorIs(t, err, reminder.ErrMissingTarget)
	require.ErrorContains(t, err, "Please choose a date and time first.")

	err = run(context.Background(), newDeps(m, &inline, nil), "08:59")
	require.ErrorIs(t, err, reminder.ErrNotInFuture)

	require.Zero(t, m.Pending())
}

// TestTonePlayer returns a nil interface when the tone is off.
func TestTonePlayer(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Sound.Player = "mpv"

	player, ok := TonePlayer(cfg, false).(*audio.Player)
	require.True(t, ok)
	require.Equal(t, audio.DefaultTone(), player.Tone())
	require.Nil(t, TonePlayer(cfg, true))

	cfg.Sound.Enabled = false
	require.Nil(t, TonePlayer(cfg, false))

	opts := NotifyOptions(cfg)
	require.Equal(t, cfg.Notification.Title, opts.Title)
	require.False(t, opts.Disabled)
}

// TestRun_UsesGivenSettings parses the target with the layout of the settings it is handed.
func TestRun_UsesGivenSettings(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.TimeLayout = "02.01.2006 15:04"
	cfg.Notification.Enabled = false
	cfg.Sound.Enabled = false

	// Already passed in the custom layout, so the run ends with a rejection instead of waiting.
	err := Run(context.Background(), &Options{
		Config: cfg,
		Target: "01.01.2000 10:00",
	})
	require.ErrorIs(t, err, reminder.ErrNotInFuture)

	err = Run(context.Background(), &Options{Target: ""})
	require.ErrorIs(t, err, reminder.ErrInvalidTarget)
}
