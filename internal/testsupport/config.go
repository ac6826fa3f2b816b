// Package testsupport builds throwaway configurations and stub binaries for
// package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"lazycloud/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory and written
// to disk, so both in-process callers and re-executed commands see the same
// file. Options run before the file is written.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, ".pids")
	cfgVal.SetPath(filepath.Join(base, "profiles.toml"))

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	WriteConfig(t, builder.cfg.Path(), builder.cfg)
	return builder.cfg
}

// WithProfiles appends profiles to the test configuration.
func WithProfiles(profiles ...config.Profile) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync = append(b.cfg.Sync, profiles...)
	}
}

// WithStubbedRclone writes a stub rclone into the temp directory and points the
// config at it. The stub answers --version and appends every other invocation's
// arguments to CallLog(cfg).
func WithStubbedRclone() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rclone.Binary = StubRclone(b.t, filepath.Join(b.baseDir, "bin"), 0)
	}
}

// WithFailingRclone is WithStubbedRclone with a stub that exits with code.
func WithFailingRclone(code int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rclone.Binary = StubRclone(b.t, filepath.Join(b.baseDir, "bin"), code)
	}
}

// WithMissingRclone points the config at a binary that does not exist.
func WithMissingRclone() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Rclone.Binary = filepath.Join(b.baseDir, "bin", "rclone-not-installed")
	}
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// CallLog returns the file the stub rclone appends invocations to.
func CallLog(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.RcloneBinary()), "calls.log")
}

// ReadCalls returns one entry per stub invocation other than the version check.
func ReadCalls(t testing.TB, cfg *config.Config) []string {
	t.Helper()
	data, err := os.ReadFile(CallLog(cfg))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read call log: %v", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
