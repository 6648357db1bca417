// Package config defines the reminder settings and provides helpers to load,
// validate and save them in YAML format.
//
// Settings cover input parsing, logging, the desktop notification and the
// alert tone. A missing default settings file is not an error: defaults apply.
package config
