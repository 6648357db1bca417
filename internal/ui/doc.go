// Package ui is the interactive reminder presenter built on Bubble Tea.
//
// It shows a date/time field, a set action (enter), a clear action (ctrl+x,
// only while a reminder is pending), a status line and a countdown line.
// Scheduler callbacks arrive on timer goroutines and are forwarded to the
// Bubble Tea loop through a buffered channel.
package ui
