// Package integration holds end-to-end tests running the reminder on the wall clock.
package integration
