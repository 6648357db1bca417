package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var errTestPlayer = errors.New("player exploded")

// TestWriteWAV validates the RIFF header and sample count of the default tone.
func TestWriteWAV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tone := DefaultTone()
	require.NoError(t, tone.WriteWAV(&buf))

	data := buf.Bytes()
	samples := int(tone.Duration.Seconds() * defaultSampleRate)

	require.Equal(t, "RIFF", string(data[0:4]))
	require.Equal(t, "WAVE", string(data[8:12]))
	require.Equal(t, "data", string(data[36:40]))
	require.Equal(t, uint32(defaultSampleRate), binary.LittleEndian.Uint32(data[24:28]))
	require.Equal(t, uint32(samples*2), binary.LittleEndian.Uint32(data[40:44]))
	require.Len(t, data, 44+samples*2)

	// Peak amplitude stays within the configured gain.
	var peak int16

	for i := 44; i < len(data); i += 2 {
		peak = max(peak, int16(binary.LittleEndian.Uint16(data[i:i+2]))) //nolint:gosec // Sample bytes.
	}

	require.LessOrEqual(t, float64(peak), tone.Volume*32767+1)
	require.Positive(t, peak)
}

// TestWriteWAV_RejectsLongTone refuses to render an oversized beep.
func TestWriteWAV_RejectsLongTone(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tone := DefaultTone()
	tone.Duration = 14 * time.Hour

	require.ErrorIs(t, tone.WriteWAV(&buf), ErrToneTooLong)
	require.Zero(t, buf.Len())
}

// TestPlay_RunsPlayerWithTempFile checks the WAV reaches the player and is removed afterwards.
func TestPlay_RunsPlayerWithTempFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	var (
		gotName string
		gotArgs []string
		existed bool
	)

	p := NewPlayer(Options{
		Fs:       fs,
		Dir:      "/tmp",
		GOOS:     "linux",
		LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		Run: func(_ context.Context, name string, args ...string) error {
			gotName, gotArgs = name, args
			existed, _ = afero.Exists(fs, args[len(args)-1])

			return nil
		},
	})

	require.NoError(t, p.Play(context.Background()))
	require.Equal(t, "paplay", gotName)
	require.Len(t, gotArgs, 1)
	require.True(t, existed)

	stillThere, err := afero.Exists(fs, gotArgs[0])
	require.NoError(t, err)
	require.False(t, stillThere)
}

// TestPlay_ConfiguredCommand prefers the user-configured player.
func TestPlay_ConfiguredCommand(t *testing.T) {
	t.Parallel()

	var gotArgs []string

	p := NewPlayer(Options{
		Command:  "mpv --really-quiet",
		Fs:       afero.NewMemMapFs(),
		Dir:      "/tmp",
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
		Run: func(_ context.Context, name string, args ...string) error {
			gotArgs = append([]string{name}, args...)
			return nil
		},
	})

	require.NoError(t, p.Play(context.Background()))
	require.Len(t, gotArgs, 3)
	require.Equal(t, []string{"mpv", "--really-quiet"}, gotArgs[:2])
}

// TestPlay_BellWithoutPlayer rings the terminal bell when nothing is installed.
func TestPlay_BellWithoutPlayer(t *testing.T) {
	t.Parallel()

	var bell bytes.Buffer

	p := NewPlayer(Options{
		Fs:       afero.NewMemMapFs(),
		Bell:     &bell,
		GOOS:     "linux",
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
	})

	require.NoError(t, p.Play(context.Background()))
	require.Equal(t, "\a", bell.String())
}

// TestPlay_FailureWrapsErrPlayback ensures playback errors are recognisable.
func TestPlay_FailureWrapsErrPlayback(t *testing.T) {
	t.Parallel()

	p := NewPlayer(Options{
		Tone:     Tone{FrequencyHz: 440, Duration: 50 * time.Millisecond, Volume: 0.5},
		Fs:       afero.NewMemMapFs(),
		Dir:      "/tmp",
		GOOS:     "darwin",
		LookPath: func(string) (string, error) { return "/usr/bin/afplay", nil },
		Run: func(context.Context, string, ...string) error {
			return errTestPlayer
		},
	})

	err := p.Play(context.Background())
	require.ErrorIs(t, err, ErrPlayback)
	require.ErrorIs(t, err, errTestPlayer)

	err = NewPlayer(Options{
		Fs:      afero.NewReadOnlyFs(afero.NewMemMapFs()),
		Command: "afplay",
	}).Play(context.Background())
	require.ErrorIs(t, err, ErrPlayback)
}
