// Package audio plays the short fixed alert tone.
//
// The tone is rendered as a mono 16-bit PCM WAV file and handed to the
// platform's command-line player. Without a player the terminal bell rings.
package audio
