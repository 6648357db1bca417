// Package clock abstracts wall-clock reads and timer scheduling.
//
// Real is backed by the time package, Manual keeps virtual time that tests
// move forward explicitly, running due callbacks in deadline order.
package clock
