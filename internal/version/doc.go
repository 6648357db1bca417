// Package version exposes build metadata of alarm-reminder.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags.
package version
