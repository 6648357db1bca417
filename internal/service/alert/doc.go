// Package alert surfaces a fired reminder to the user: a notification and a
// tone. It is the fire callback handed to the scheduler and never lets a
// notification or playback failure escape.
package alert
