package supervisor

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// LaunchSpec describes the watcher process to spawn.
type LaunchSpec struct {
	Executable string
	ConfigPath string
	// Profile is the profile name, or "" for a watcher over all profiles.
	Profile  string
	Interval time.Duration
}

// Args returns the command line that re-enters the program in run mode. The
// run flag precedes the selector and "--" ends flag parsing, so a profile
// name beginning with "-" still reaches the child as a positional argument.
func (s LaunchSpec) Args() []string {
	var args []string
	if cfg := strings.TrimSpace(s.ConfigPath); cfg != "" {
		args = append(args, "--config", cfg)
	}
	args = append(args, "watch", "--"+RunFlag)
	if s.Profile == "" {
		args = append(args, "all", "--")
	} else {
		args = append(args, "profile", "--", s.Profile)
	}
	seconds := int64(s.Interval / time.Second)
	return append(args, strconv.FormatInt(seconds, 10))
}

// RunFlag is the hidden watch flag selecting the in-process loop.
const RunFlag = "run"

// Launcher starts a detached watcher and returns its pid.
type Launcher interface {
	Launch(spec LaunchSpec) (int, error)
}

// ExecLauncher spawns watchers as detached child processes with no inherited
// standard streams.
type ExecLauncher struct{}

// Launch starts the watcher and releases it; the caller never waits on it.
func (ExecLauncher) Launch(spec LaunchSpec) (int, error) {
	if strings.TrimSpace(spec.Executable) == "" {
		return 0, fmt.Errorf("resolve executable: executable path is empty")
	}
	// Stdin, Stdout and Stderr stay nil, which os/exec wires to the null device.
	proc := exec.Command(spec.Executable, spec.Args()...)
	detach(proc)
	if err := proc.Start(); err != nil {
		return 0, fmt.Errorf("launch watcher: %w", err)
	}
	pid := proc.Process.Pid
	if err := proc.Process.Release(); err != nil {
		return pid, fmt.Errorf("release watcher process %d: %w", pid, err)
	}
	return pid, nil
}
