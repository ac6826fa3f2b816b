package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// StubRclone writes an rclone stand-in into dir and returns its path. The stub
// exits 0 for --version, otherwise logs its arguments to calls.log next to
// itself and exits with exitCode. Tests using it are skipped on Windows.
func StubRclone(t testing.TB, dir string, exitCode int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub binaries are not supported on windows")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "rclone v1.66.0"
  exit 0
fi
echo "$*" >> "$(dirname "$0")/calls.log"
exit %d
`, exitCode)
	target := filepath.Join(dir, "rclone")
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub rclone: %v", err)
	}
	return target
}
