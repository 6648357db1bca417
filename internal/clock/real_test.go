package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestReal_OnceAndRepeating exercises wall-clock scheduling with short intervals.
func TestReal_OnceAndRepeating(t *testing.T) {
	t.Parallel()

	r := NewReal()
	defer r.Stop()

	var once, ticks atomic.Int32

	r.ScheduleOnce(10*time.Millisecond, func() { once.Add(1) })
	h := r.ScheduleRepeating(5*time.Millisecond, func() { ticks.Add(1) })

	require.Eventually(t, func() bool {
		return once.Load() == 1 && ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	r.Cancel(h)
	require.Zero(t, r.Pending())

	seen := ticks.Load()

	time.Sleep(30 * time.Millisecond)
	// At most one callback could have been past the handle check when Cancel ran.
	require.LessOrEqual(t, ticks.Load(), seen+1)
}

// TestReal_CancelBeforeFire ensures a cancelled one-shot never runs.
func TestReal_CancelBeforeFire(t *testing.T) {
	t.Parallel()

	r := NewReal()

	var fired atomic.Bool

	h := r.ScheduleOnce(20*time.Millisecond, func() { fired.Store(true) })
	r.Cancel(h)
	r.Cancel(h)

	time.Sleep(50 * time.Millisecond)
	require.False(t, fired.Load())
}
