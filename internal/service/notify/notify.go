package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/logger"
)

// DefaultTitle is the notification title.
const DefaultTitle = "Alarm Reminder"

// ErrUnsupportedOS indicates there is no known notifier for the current OS.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Options configures a Notifier.
type Options struct {
	// Title is the notification title.
	Title string
	// Disabled denies system notifications outright.
	Disabled bool
	// Fallback shows the inline message. Defaults to writing to stderr.
	Fallback func(message string)
	// GOOS overrides runtime.GOOS.
	GOOS string
	// LookPath overrides exec.LookPath.
	LookPath func(file string) (string, error)
	// Run overrides command execution.
	Run func(ctx context.Context, name string, args ...string) error
}

// Notifier displays notifications and tracks their permission.
type Notifier struct {
	title    string
	goos     string
	fallback func(message string)
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error

	// permission is the resolved permission state.
	permission reminder.Permission
	// mu protects permission.
	mu sync.Mutex
}

// New creates a notifier.
func New(opts Options) *Notifier {
	n := &Notifier{
		title:    opts.Title,
		goos:     strings.ToLower(opts.GOOS),
		fallback: opts.Fallback,
		lookPath: opts.LookPath,
		run:      opts.Run,
	}

	if n.title == "" {
		n.title = DefaultTitle
	}

	if n.goos == "" {
		n.goos = runtime.GOOS
	}

	if n.fallback == nil {
		n.fallback = WriterFallback(os.Stderr)
	}

	if n.lookPath == nil {
		n.lookPath = exec.LookPath
	}

	if n.run == nil {
		n.run = runCommand
	}

	if opts.Disabled {
		n.permission = reminder.PermissionDenied
	}

	return n
}

// WriterFallback returns a fallback that rings the terminal bell and writes message to w.
func WriterFallback(w io.Writer) func(message string) {
	return func(message string) {
		_, _ = fmt.Fprintf(w, "\a%s\n", message)
	}
}

// Permission returns the current permission state.
func (n *Notifier) Permission() reminder.Permission {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.permission
}

// RequestPermission resolves an undetermined permission by probing for the
// OS notifier tool: granted when it is installed, denied otherwise.
func (n *Notifier) RequestPermission(ctx context.Context) reminder.Permission {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.permission != reminder.PermissionUndetermined {
		return n.permission
	}

	name, _, err := command(n.goos, n.title, "")
	if err == nil {
		_, err = n.lookPath(name)
	}

	if err != nil {
		logger.DebugKV(ctx, "No desktop notifier available", "error", err)

		n.permission = reminder.PermissionDenied

		return n.permission
	}

	n.permission = reminder.PermissionGranted

	return n.permission
}

// Notify shows message as a system notification when permitted, otherwise
// inline. A failing notifier falls back to the inline message and reports
// the failure.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if n.Permission() != reminder.PermissionGranted {
		n.fallback(message)

		return nil
	}

	name, args, err := command(n.goos, n.title, message)
	if err == nil {
		err = n.run(ctx, name, args...)
	}

	if err != nil {
		n.fallback(message)

		return fmt.Errorf("show notification: %w", err)
	}

	return nil
}

// command picks the notifier invocation for goos, following the built-in tools:
// - Linux/BSD: `notify-send <title> <body>`
// - macOS:     `osascript -e 'display notification ...'`
// - Windows:   `msg * <title>: <body>`.
func command(goos, title, body string) (string, []string, error) {
	switch {
	case strings.Contains(goos, "darwin"):
		script := fmt.Sprintf("display notification %s with title %s", appleScriptQuote(body), appleScriptQuote(title))

		return "osascript", []string{"-e", script}, nil
	case strings.Contains(goos, "windows"):
		return "msg.exe", []string{"*", title + ": " + body}, nil
	case strings.Contains(goos, "linux") || strings.HasSuffix(goos, "bsd"):
		return "notify-send", []string{title, body}, nil
	default:
		return "", nil, fmt.Errorf("notifier for %s: %w", goos, ErrUnsupportedOS)
	}
}

// appleScriptQuote renders s as an AppleScript string literal.
func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"` + s + `"`
}

func runCommand(ctx context.Context, name string, args ...string) error {
	//nolint:gosec // Binary and arguments come from the fixed table in command.
	return exec.CommandContext(ctx, name, args...).Run()
}
