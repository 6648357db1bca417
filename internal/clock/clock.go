package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Handle identifies a scheduled activity. The zero value is never issued.
type Handle uint64

// TimerService schedules one-shot and repeating callbacks.
type TimerService interface {
	// ScheduleOnce runs fn once after delay.
	ScheduleOnce(delay time.Duration, fn func()) Handle
	// ScheduleRepeating runs fn every interval until cancelled.
	ScheduleRepeating(interval time.Duration, fn func()) Handle
	// Cancel stops the activity. Unknown or already finished handles are ignored.
	Cancel(h Handle)
}
