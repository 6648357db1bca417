// Package instance detects other running reminder processes so that only one
// reminder is pending per user session.
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// Lister returns the running processes.
type Lister func() ([]ps.Process, error)

// Others returns the PIDs of processes running executable, excluding the
// current one. An empty executable means the current binary's name.
func Others(list Lister, executable string) ([]int, error) {
	if list == nil {
		list = ps.Processes
	}

	if executable == "" {
		executable = CurrentExecutable()
	}

	processList, err := list()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var (
		thisProcessID = os.Getpid()
		result        []int
	)

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if !sameExecutable(process.Executable(), executable) {
			continue
		}

		result = append(result, process.Pid())
	}

	return result, nil
}

// CurrentExecutable returns the file name of the running binary.
func CurrentExecutable() string {
	return filepath.Base(os.Args[0])
}

// sameExecutable compares names, ignoring case and ".exe" on Windows.
func sameExecutable(a, b string) bool {
	if !strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return a == b
	}

	trim := func(s string) string {
		return strings.TrimSuffix(strings.ToLower(s), ".exe")
	}

	return trim(a) == trim(b)
}
