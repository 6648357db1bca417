package remind

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/alarm-reminder/internal/clock"
	"github.com/oshokin/alarm-reminder/internal/config"
	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/logger"
	"github.com/oshokin/alarm-reminder/internal/service/alert"
	"github.com/oshokin/alarm-reminder/internal/service/audio"
	"github.com/oshokin/alarm-reminder/internal/service/notify"
	"github.com/oshokin/alarm-reminder/internal/service/scheduler"
)

// Options controls a headless reminder run.
type Options struct {
	// Config holds the loaded settings; nil means config.Default.
	Config *config.Config
	// Target is the raw date/time input.
	Target string
	// Mute skips the alert tone.
	Mute bool
}

// dependencies are the collaborators of a run, replaceable in tests.
type dependencies struct {
	clock    clock.Clock
	timers   clock.TimerService
	notifier *notify.Notifier
	player   alert.TonePlayer
	layout   string
}

// Run arms a reminder and blocks until it fires or ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-reminder")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	wallClock := clock.NewReal()
	defer wallClock.Stop()

	deps := &dependencies{
		clock:    wallClock,
		timers:   wallClock,
		notifier: notify.New(NotifyOptions(cfg)),
		player:   TonePlayer(cfg, opts.Mute),
		layout:   cfg.TimeLayout,
	}

	return run(ctx, deps, opts.Target)
}

// NotifyOptions maps settings to notifier options.
func NotifyOptions(cfg *config.Config) notify.Options {
	return notify.Options{
		Title:    cfg.Notification.Title,
		Disabled: !cfg.Notification.Enabled,
	}
}

// TonePlayer builds the alert tone player, or nil when the tone is off.
func TonePlayer(cfg *config.Config, mute bool) alert.TonePlayer {
	if mute || !cfg.Sound.Enabled {
		return nil
	}

	return audio.NewPlayer(audio.Options{
		Tone:    audio.DefaultTone(),
		Command: cfg.Sound.Player,
	})
}

func run(ctx context.Context, deps *dependencies, raw string) error {
	var (
		alerter = alert.New(deps.notifier, deps.player)
		fired   = make(chan time.Time, 1)
	)

	sched := scheduler.New(
		deps.clock,
		deps.timers,
		scheduler.WithPermission(deps.notifier),
		scheduler.WithOnCountdown(func(c scheduler.Countdown) {
			logger.Infof(ctx, "Time left: %s", reminder.FormatDuration(c.Remaining))
		}),
		scheduler.WithOnFire(func(target time.Time) {
			alerter.Fire(ctx, target)
			fired <- target
		}),
	)

	target, err := sched.ArmRaw(ctx, raw, deps.layout)
	if err != nil {
		return fmt.Errorf("%s: %w", reminder.RejectionMessage(err), err)
	}

	logger.Infof(ctx, "Reminder set for %s", reminder.FormatTarget(target))

	select {
	case <-ctx.Done():
		sched.Cancel()
		logger.Info(ctx, "Reminder cleared.")

		return nil
	case target = <-fired:
		logger.Infof(ctx, "Time reached: %s", reminder.FormatTarget(target))
		alerter.Wait()

		return nil
	}
}
