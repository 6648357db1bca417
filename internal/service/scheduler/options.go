package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
)

// Countdown is reported by the countdown refresh while armed.
type Countdown struct {
	// PeriodID identifies the armed period.
	PeriodID uuid.UUID
	// Target is the armed instant.
	Target time.Time
	// Remaining is max(0, target - now).
	Remaining time.Duration
}

// PermissionRequester exposes the notification permission of the alert side.
type PermissionRequester interface {
	Permission() reminder.Permission
	RequestPermission(ctx context.Context) reminder.Permission
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithOnFire sets the callback invoked once per armed period with the target instant.
func WithOnFire(fn func(target time.Time)) Option {
	return func(s *Scheduler) {
		s.onFire = fn
	}
}

// WithOnCountdown sets the callback invoked on every countdown refresh.
// It runs with the scheduler lock held and must not call back into the Scheduler.
func WithOnCountdown(fn func(Countdown)) Option {
	return func(s *Scheduler) {
		s.onCountdown = fn
	}
}

// WithPermission sets the notification permission source asked before arming.
func WithPermission(p PermissionRequester) Option {
	return func(s *Scheduler) {
		s.permission = p
	}
}
