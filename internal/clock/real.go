package clock

import (
	"sync"
	"time"
)

// Real implements Clock and TimerService on top of time.AfterFunc.
// Callbacks run on their own goroutines.
type Real struct {
	// timers holds live activities keyed by handle.
	timers map[Handle]*realTimer
	// nextID is the last issued handle.
	nextID Handle
	// mu protects timers and nextID.
	mu sync.Mutex
}

type realTimer struct {
	// interval is zero for one-shot timers.
	interval time.Duration
	// stop halts the pending time.Timer.
	stop func() bool
	// fn is the user callback.
	fn func()
}

// NewReal creates a wall-clock timer service.
func NewReal() *Real {
	return &Real{
		timers: make(map[Handle]*realTimer),
	}
}

// Now returns time.Now.
func (r *Real) Now() time.Time {
	return time.Now()
}

// ScheduleOnce runs fn once after delay.
func (r *Real) ScheduleOnce(delay time.Duration, fn func()) Handle {
	return r.schedule(delay, 0, fn)
}

// ScheduleRepeating runs fn every interval, rescheduling right before each call.
func (r *Real) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	return r.schedule(interval, interval, fn)
}

func (r *Real) schedule(delay, interval time.Duration, fn func()) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID

	t := time.AfterFunc(delay, func() {
		r.fire(id)
	})

	r.timers[id] = &realTimer{
		interval: interval,
		stop:     t.Stop,
		fn:       fn,
	}

	return id
}

func (r *Real) fire(id Handle) {
	r.mu.Lock()

	t, ok := r.timers[id]
	if !ok {
		// Cancelled before the timer goroutine got here.
		r.mu.Unlock()
		return
	}

	if t.interval > 0 {
		next := time.AfterFunc(t.interval, func() {
			r.fire(id)
		})
		t.stop = next.Stop
	} else {
		delete(r.timers, id)
	}

	fn := t.fn
	r.mu.Unlock()

	fn()
}

// Cancel stops a timer and forgets it.
func (r *Real) Cancel(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[h]; ok {
		t.stop()
		delete(r.timers, h)
	}
}

// Stop cancels every live timer.
func (r *Real) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.timers {
		t.stop()
	}

	r.timers = make(map[Handle]*realTimer)
}

// Pending returns the number of live timers.
func (r *Real) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.timers)
}
