// Package reminder contains the core domain types of a single pending reminder.
//
// It defines the scheduler State, the rejection errors returned when arming,
// the notification Permission states, and the helpers that turn raw user
// input into a target instant and remaining time into countdown text.
package reminder
