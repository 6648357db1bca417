package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// ErrPlayback wraps every tone playback failure.
var ErrPlayback = errors.New("tone playback failed")

// Options configures a Player.
type Options struct {
	// Tone is the beep to play. Zero value means DefaultTone.
	Tone Tone
	// Command overrides the player binary; the WAV path is appended as the last argument.
	Command string
	// Fs is where the WAV file is written. It must be backed by the OS
	// filesystem for external players to read it.
	Fs afero.Fs
	// Dir is the directory for the temporary WAV file.
	Dir string
	// Bell receives the terminal bell when no player is available.
	Bell io.Writer
	// GOOS overrides runtime.GOOS.
	GOOS string
	// LookPath overrides exec.LookPath.
	LookPath func(file string) (string, error)
	// Run overrides command execution.
	Run func(ctx context.Context, name string, args ...string) error
}

// Player plays the alert tone through an external command.
type Player struct {
	tone     Tone
	command  []string
	fs       afero.Fs
	dir      string
	bell     io.Writer
	goos     string
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

// NewPlayer creates a player.
func NewPlayer(opts Options) *Player {
	p := &Player{
		tone:     opts.Tone,
		command:  strings.Fields(opts.Command),
		fs:       opts.Fs,
		dir:      opts.Dir,
		bell:     opts.Bell,
		goos:     strings.ToLower(opts.GOOS),
		lookPath: opts.LookPath,
		run:      opts.Run,
	}

	if p.tone.FrequencyHz <= 0 {
		p.tone = DefaultTone()
	}

	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}

	if p.dir == "" {
		p.dir = os.TempDir()
	}

	if p.bell == nil {
		p.bell = os.Stdout
	}

	if p.goos == "" {
		p.goos = runtime.GOOS
	}

	if p.lookPath == nil {
		p.lookPath = exec.LookPath
	}

	if p.run == nil {
		p.run = func(ctx context.Context, name string, args ...string) error {
			//nolint:gosec // Player binary is either configured by the user or from the fixed table.
			return exec.CommandContext(ctx, name, args...).Run()
		}
	}

	return p
}

// Tone returns the beep rendered on Play.
func (p *Player) Tone() Tone {
	return p.tone
}

// Play renders the tone and blocks until the player exits.
// Errors wrap ErrPlayback.
func (p *Player) Play(ctx context.Context) error {
	name, args, ok := p.resolve()
	if !ok {
		if _, err := io.WriteString(p.bell, "\a"); err != nil {
			return fmt.Errorf("%w: ring bell: %w", ErrPlayback, err)
		}

		return nil
	}

	path, err := p.writeTone()
	if err != nil {
		return err
	}

	defer func() {
		_ = p.fs.Remove(path)
	}()

	if err = p.run(ctx, name, append(args, path)...); err != nil {
		return fmt.Errorf("%w: run %s: %w", ErrPlayback, name, err)
	}

	return nil
}

func (p *Player) writeTone() (string, error) {
	file, err := afero.TempFile(p.fs, p.dir, "alarm-reminder-*.wav")
	if err != nil {
		return "", fmt.Errorf("%w: create tone file: %w", ErrPlayback, err)
	}

	if err = p.tone.WriteWAV(file); err != nil {
		_ = file.Close()
		_ = p.fs.Remove(file.Name())

		return "", fmt.Errorf("%w: %w", ErrPlayback, err)
	}

	if err = file.Close(); err != nil {
		_ = p.fs.Remove(file.Name())

		return "", fmt.Errorf("%w: close tone file: %w", ErrPlayback, err)
	}

	return file.Name(), nil
}

// resolve returns the configured player or the first installed platform player.
func (p *Player) resolve() (string, []string, bool) {
	if len(p.command) > 0 {
		return p.command[0], p.command[1:], true
	}

	for _, candidate := range candidates(p.goos) {
		if _, err := p.lookPath(candidate[0]); err == nil {
			return candidate[0], candidate[1:], true
		}
	}

	return "", nil, false
}

// candidates lists players per OS in order of preference.
func candidates(goos string) [][]string {
	switch {
	case strings.Contains(goos, "darwin"):
		return [][]string{{"afplay"}}
	case strings.Contains(goos, "windows"):
		return [][]string{{"powershell.exe", "-NoProfile", "-Command", "& { (New-Object Media.SoundPlayer $args[0]).PlaySync() }"}}
	default:
		return [][]string{{"paplay"}, {"pw-play"}, {"aplay", "-q"}}
	}
}
