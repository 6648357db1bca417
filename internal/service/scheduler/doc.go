// Package scheduler implements the reminder scheduler: it owns one target
// instant, watches it with three redundant activities and fires exactly once
// per armed period.
//
// A one-shot timer is armed for the exact delay, but one-shot delivery is not
// trusted alone: the host may coarsen or suspend timers (sleep, throttling).
// A 200 ms backup poll and the 1 s countdown refresh both compare the clock
// against the target and take the fire path themselves when it is reached.
// Whichever activity gets there first tears all three down before the fire
// callback runs.
package scheduler
