// Package remind runs a single reminder without the interactive UI.
//
// It arms the scheduler for the requested time, logs the countdown once a
// second, alerts when the target is reached and exits. Cancelling the
// context clears the pending reminder.
package remind
