package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"lazycloud/internal/config"
	"lazycloud/internal/supervisor"
	"lazycloud/internal/testsupport"
)

var testProfiles = []config.Profile{
	{Name: "docs", From: "/home/me/docs", To: "gdrive:docs", Mode: "replace", Flags: "--progress"},
	{Name: "media", From: "/home/me/media", To: "gdrive:media", Mode: "copy"},
}

func setupCLIConfig(t *testing.T, opts ...testsupport.ConfigOption) *config.Config {
	t.Helper()
	opts = append([]testsupport.ConfigOption{testsupport.WithStubbedRclone(), testsupport.WithProfiles(testProfiles...)}, opts...)
	return testsupport.NewConfig(t, opts...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args, configPath)
}

func runCLIContext(t *testing.T, ctx context.Context, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

type recordingLauncher struct {
	mu    sync.Mutex
	pid   int
	specs []supervisor.LaunchSpec
}

func (l *recordingLauncher) Launch(spec supervisor.LaunchSpec) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.specs = append(l.specs, spec)
	return l.pid, nil
}

func useLauncher(t *testing.T, l supervisor.Launcher) {
	t.Helper()
	previous := launcher
	launcher = l
	t.Cleanup(func() { launcher = previous })
}
