package clock

import (
	"sync"
	"time"
)

// Manual is a deterministic Clock and TimerService for tests.
// Time only moves through Advance and Set.
type Manual struct {
	now    time.Time
	timers map[Handle]*manualTimer
	nextID Handle
	mu     sync.Mutex
}

type manualTimer struct {
	due      time.Time
	interval time.Duration
	fn       func()
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:    start,
		timers: make(map[Handle]*manualTimer),
	}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// ScheduleOnce registers fn to run when virtual time reaches now+delay.
func (m *Manual) ScheduleOnce(delay time.Duration, fn func()) Handle {
	return m.schedule(delay, 0, fn)
}

// ScheduleRepeating registers fn to run every interval of virtual time.
func (m *Manual) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	return m.schedule(interval, interval, fn)
}

func (m *Manual) schedule(delay, interval time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.timers[m.nextID] = &manualTimer{
		due:      m.now.Add(delay),
		interval: interval,
		fn:       fn,
	}

	return m.nextID
}

// Cancel forgets the timer.
func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.timers, h)
}

// Advance moves virtual time forward by d, running every callback that
// becomes due on the way. Callbacks run without the lock held and may
// schedule or cancel timers.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	m.runUntil(target)
}

// Set moves virtual time to t. Moving backwards runs nothing.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	if !t.After(m.now) {
		m.now = t
		m.mu.Unlock()

		return
	}
	m.mu.Unlock()

	m.runUntil(t)
}

// Pending returns the number of live timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.timers)
}

func (m *Manual) runUntil(target time.Time) {
	for {
		m.mu.Lock()

		id, next := m.earliestDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()

			return
		}

		m.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			delete(m.timers, id)
		}

		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// earliestDue picks the timer with the smallest deadline not after target.
// Ties go to the timer scheduled first.
func (m *Manual) earliestDue(target time.Time) (Handle, *manualTimer) {
	var (
		bestID Handle
		best   *manualTimer
	)

	for id, t := range m.timers {
		if t.due.After(target) {
			continue
		}

		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && id < bestID) {
			bestID, best = id, t
		}
	}

	return bestID, best
}
