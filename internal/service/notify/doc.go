// Package notify shows reminder notifications.
//
// A Notifier sends system-level notifications through the notifier tool of
// the current OS when permission is granted and falls back to an inline,
// blocking-style message otherwise.
package notify
