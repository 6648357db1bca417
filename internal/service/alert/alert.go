package alert

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/logger"
	"github.com/oshokin/alarm-reminder/internal/service/audio"
)

// Notifier shows the reminder message.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// TonePlayer plays the alert tone.
type TonePlayer interface {
	Play(ctx context.Context) error
}

// Alerter notifies and beeps when a reminder fires.
type Alerter struct {
	// notifier shows the message, may be nil.
	notifier Notifier
	// player plays the tone, nil when muted.
	player TonePlayer
	// playing tracks tone playback started by Fire.
	playing sync.WaitGroup
}

// New creates an Alerter. A nil player mutes the tone.
func New(notifier Notifier, player TonePlayer) *Alerter {
	return &Alerter{
		notifier: notifier,
		player:   player,
	}
}

// Message returns the notification body for target.
func Message(target time.Time) string {
	return "Reminder for " + reminder.FormatTarget(target)
}

// Fire shows the notification and starts the tone in the background.
// It returns quickly and swallows every failure.
func (a *Alerter) Fire(ctx context.Context, target time.Time) {
	ctx = logger.WithName(ctx, "alert")
	message := Message(target)

	if a.notifier != nil {
		if err := a.notifier.Notify(ctx, message); err != nil {
			logger.WarnKV(ctx, "Notification failed, shown inline instead", "error", err)
		}
	}

	if a.player == nil {
		return
	}

	a.playing.Go(func() {
		if err := a.player.Play(ctx); err != nil {
			if errors.Is(err, audio.ErrPlayback) {
				logger.WarnKV(ctx, "Alert tone not played", "error", err)
				return
			}

			logger.ErrorKV(ctx, "Alert tone failed", "error", err)
		}
	})
}

// Wait blocks until tones started by Fire finish.
func (a *Alerter) Wait() {
	a.playing.Wait()
}
