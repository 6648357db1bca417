package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/alarm-reminder/internal/clock"
	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/logger"
)

const (
	// PollInterval is the cadence of the backup watcher.
	PollInterval = 200 * time.Millisecond
	// CountdownInterval is the cadence of the countdown refresh.
	CountdownInterval = time.Second
)

// trigger names the activity that detected the target.
type trigger string

const (
	triggerAlarm     trigger = "alarm"
	triggerPoll      trigger = "poll"
	triggerCountdown trigger = "countdown"
)

// Scheduler arms, watches and fires a single reminder.
// It is safe for concurrent use; timer callbacks are serialized by mu and
// ignored unless they belong to the current armed period.
type Scheduler struct {
	// clock reads the current instant.
	clock clock.Clock
	// timers schedules the three activities.
	timers clock.TimerService

	// onFire receives the target once per armed period.
	onFire func(time.Time)
	// onCountdown receives countdown refreshes.
	onCountdown func(Countdown)
	// permission is asked before arming when undetermined.
	permission PermissionRequester

	// state is the lifecycle stage.
	state reminder.State
	// current is the armed period, nil unless state is StateArmed.
	current *period
	// generation increments on every successful Arm.
	generation uint64
	// mu protects state, current and generation.
	mu sync.Mutex
}

// period is everything owned by one armed period.
type period struct {
	ctx        context.Context //nolint:containedctx // Carries the logger into timer callbacks.
	id         uuid.UUID
	generation uint64
	target     time.Time

	alarm     clock.Handle
	poll      clock.Handle
	countdown clock.Handle
}

// New creates an idle scheduler.
func New(clk clock.Clock, timers clock.TimerService, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:  clk,
		timers: timers,
		state:  reminder.StateIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Arm schedules a reminder for target, replacing any armed one.
// It returns an error wrapping reminder.ErrInvalidTarget for a zero target
// and reminder.ErrNotInFuture when target is not after now; state is left
// untouched in both cases.
func (s *Scheduler) Arm(ctx context.Context, target time.Time) error {
	if target.IsZero() {
		return fmt.Errorf("arm: %w", reminder.ErrInvalidTarget)
	}

	now := s.clock.Now()
	if !target.After(now) {
		return fmt.Errorf("arm at %s: %w", target.Format(time.RFC3339), reminder.ErrNotInFuture)
	}

	s.requestPermission(ctx)

	s.mu.Lock()

	s.teardownLocked()
	s.generation++

	p := &period{
		id:         uuid.New(),
		generation: s.generation,
		target:     target,
	}
	p.ctx = logger.WithKV(logger.WithName(ctx, "scheduler"), "period", p.id.String())

	gen := p.generation
	p.alarm = s.timers.ScheduleOnce(target.Sub(now), func() { s.check(gen, triggerAlarm) })
	p.poll = s.timers.ScheduleRepeating(PollInterval, func() { s.check(gen, triggerPoll) })
	p.countdown = s.timers.ScheduleRepeating(CountdownInterval, func() { s.check(gen, triggerCountdown) })

	s.current = p
	s.state = reminder.StateArmed

	s.mu.Unlock()

	logger.InfoKV(p.ctx, "Reminder armed", "target", target.Format(time.RFC3339), "delay", target.Sub(now).String())

	// Render the countdown right away instead of a second later.
	s.check(gen, triggerCountdown)

	return nil
}

// ArmRaw parses raw input with reminder.ParseTarget in local time and arms it.
func (s *Scheduler) ArmRaw(ctx context.Context, raw, layout string) (time.Time, error) {
	target, err := reminder.ParseTarget(raw, layout, s.clock.Now(), time.Local)
	if err != nil {
		return time.Time{}, err
	}

	if err = s.Arm(ctx, target); err != nil {
		return time.Time{}, err
	}

	return target, nil
}

// Cancel tears down the armed period, if any, and returns to idle.
// After Cancel returns no activity of the cancelled period takes effect.
func (s *Scheduler) Cancel() {
	s.mu.Lock()

	p := s.current
	s.teardownLocked()
	s.state = reminder.StateIdle

	s.mu.Unlock()

	if p != nil {
		logger.Info(p.ctx, "Reminder cleared")
	}
}

// RemainingTime returns max(0, target-now) while armed.
// The second result is false when idle or fired.
func (s *Scheduler) RemainingTime() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0, false
	}

	return max(s.current.target.Sub(s.clock.Now()), 0), true
}

// State returns the lifecycle stage.
func (s *Scheduler) State() reminder.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Target returns the armed instant. The second result is false unless armed.
func (s *Scheduler) Target() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return time.Time{}, false
	}

	return s.current.target, true
}

// Period returns the ID of the armed period, carried by its countdown refreshes.
// The second result is false unless armed.
func (s *Scheduler) Period() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return uuid.Nil, false
	}

	return s.current.id, true
}

// check is the body of all three activities.
func (s *Scheduler) check(gen uint64, source trigger) {
	s.mu.Lock()

	p := s.current
	if p == nil || p.generation != gen {
		s.mu.Unlock()
		return
	}

	remaining := p.target.Sub(s.clock.Now())

	// A wall clock stepped backwards leaves the alarm early; the poll keeps watching.
	if remaining <= 0 {
		s.teardownLocked()
		s.state = reminder.StateFired
		s.mu.Unlock()

		s.fire(p, source)

		return
	}

	defer s.mu.Unlock()

	if source == triggerAlarm {
		logger.DebugKV(p.ctx, "Alarm ran before target", "remaining", remaining.String())

		return
	}

	// Reported under the lock so no refresh can land after Cancel returns.
	if source == triggerCountdown && s.onCountdown != nil {
		s.onCountdown(Countdown{
			PeriodID:  p.id,
			Target:    p.target,
			Remaining: remaining,
		})
	}
}

// fire runs after teardown; a panicking callback cannot reach the timer goroutine.
func (s *Scheduler) fire(p *period, source trigger) {
	logger.InfoKV(p.ctx, "Reminder fired", "target", p.target.Format(time.RFC3339), "trigger", string(source))

	if s.onFire == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV(p.ctx, "Fire callback panicked", "panic", r)
		}
	}()

	s.onFire(p.target)
}

// teardownLocked releases every activity of the armed period.
func (s *Scheduler) teardownLocked() {
	p := s.current
	if p == nil {
		return
	}

	s.timers.Cancel(p.alarm)
	s.timers.Cancel(p.poll)
	s.timers.Cancel(p.countdown)

	s.current = nil
}

// requestPermission asks for notification permission without blocking arming.
func (s *Scheduler) requestPermission(ctx context.Context) {
	if s.permission == nil || s.permission.Permission() != reminder.PermissionUndetermined {
		return
	}

	go func() {
		granted := s.permission.RequestPermission(ctx)
		logger.DebugKV(ctx, "Notification permission resolved", "permission", granted.String())
	}()
}
