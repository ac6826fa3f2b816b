package supervisor_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"lazycloud/internal/config"
	"lazycloud/internal/logging"
	"lazycloud/internal/procctl"
	"lazycloud/internal/rclone"
	"lazycloud/internal/registry"
	"lazycloud/internal/supervisor"
)

type fakeSyncer struct {
	checkErr error
	checks   int
	synced   []string
	fail     map[string]error
}

func (f *fakeSyncer) Check(context.Context) error {
	f.checks++
	return f.checkErr
}

func (f *fakeSyncer) Sync(_ context.Context, p config.Profile) error {
	f.synced = append(f.synced, p.Name)
	return f.fail[p.Name]
}

type fakeLauncher struct {
	nextPID int
	err     error
	specs   []supervisor.LaunchSpec
}

func (f *fakeLauncher) Launch(spec supervisor.LaunchSpec) (int, error) {
	f.specs = append(f.specs, spec)
	if f.err != nil {
		return 0, f.err
	}
	f.nextPID++
	return f.nextPID, nil
}

type fakeStopper struct {
	stopped []string
	result  procctl.Result
}

func (f *fakeStopper) Stop(id string) procctl.Result {
	f.stopped = append(f.stopped, id)
	return f.result
}

var testProfiles = []config.Profile{
	{Name: "docs", From: "/docs", To: "r:docs", Mode: "replace"},
	{Name: "media", From: "/media", To: "r:media", Mode: "copy"},
}

func newSupervisor(t *testing.T, opts supervisor.Options) (*supervisor.Supervisor, *registry.Table) {
	t.Helper()
	if opts.Table == nil {
		opts.Table = registry.New(t.TempDir())
	}
	if opts.Profiles == nil {
		opts.Profiles = testProfiles
	}
	if opts.Syncer == nil {
		opts.Syncer = &fakeSyncer{}
	}
	if opts.Launcher == nil {
		opts.Launcher = &fakeLauncher{nextPID: 4000}
	}
	opts.Executable = "/usr/local/bin/lazycloud"
	opts.Logger = logging.NewNop()
	sup, err := supervisor.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return sup, opts.Table
}

func TestNewRequiresTableAndSyncer(t *testing.T) {
	if _, err := supervisor.New(supervisor.Options{}); err == nil {
		t.Fatal("expected error without table and syncer")
	}
}

func TestLaunchSpecArgs(t *testing.T) {
	tests := []struct {
		name string
		spec supervisor.LaunchSpec
		want []string
	}{
		{
			name: "profile",
			spec: supervisor.LaunchSpec{ConfigPath: "/etc/lc.toml", Profile: "docs", Interval: 90 * time.Second},
			want: []string{"--config", "/etc/lc.toml", "watch", "--run", "profile", "--", "docs", "90"},
		},
		{
			name: "dash-prefixed profile",
			spec: supervisor.LaunchSpec{Profile: "-x", Interval: time.Second},
			want: []string{"watch", "--run", "profile", "--", "-x", "1"},
		},
		{
			name: "all",
			spec: supervisor.LaunchSpec{Interval: time.Minute},
			want: []string{"watch", "--run", "all", "--", "60"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.spec.Args(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("unexpected args: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestStartRegistersLaunchedWatcher(t *testing.T) {
	launcher := &fakeLauncher{nextPID: 4000}
	sup, table := newSupervisor(t, supervisor.Options{Launcher: launcher, ConfigPath: "/cfg/profiles.toml"})

	results, err := sup.Start(context.Background(), supervisor.ProfileTarget("docs"), 30*time.Second)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if len(results) != 1 || results[0].State != supervisor.StartStateStarted || results[0].PID != 4001 {
		t.Fatalf("unexpected results: %+v", results)
	}
	pid, err := table.Read("docs")
	if err != nil || pid != 4001 {
		t.Fatalf("expected registered pid 4001, got %d (%v)", pid, err)
	}
	spec := launcher.specs[0]
	if spec.Profile != "docs" || spec.Interval != 30*time.Second || spec.ConfigPath != "/cfg/profiles.toml" {
		t.Fatalf("unexpected launch spec: %+v", spec)
	}
}

func TestStartSkipsRunningWatcher(t *testing.T) {
	launcher := &fakeLauncher{nextPID: 4000}
	sup, table := newSupervisor(t, supervisor.Options{Launcher: launcher})
	if err := table.Create("docs", 1234); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	results, err := sup.Start(context.Background(), supervisor.AllTarget(), time.Minute)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if results[0].State != supervisor.StartStateAlreadyRunning {
		t.Fatalf("expected docs already running, got %+v", results[0])
	}
	if results[1].State != supervisor.StartStateStarted {
		t.Fatalf("expected media started, got %+v", results[1])
	}
	if len(launcher.specs) != 1 || launcher.specs[0].Profile != "media" {
		t.Fatalf("expected a single spawn for media, got %+v", launcher.specs)
	}
	if pid, _ := table.Read("docs"); pid != 1234 {
		t.Fatalf("existing record overwritten: %d", pid)
	}
}

func TestStartLaunchFailureLeavesNoRecord(t *testing.T) {
	launcher := &fakeLauncher{err: errors.New("exec format error")}
	sup, table := newSupervisor(t, supervisor.Options{Launcher: launcher})

	results, err := sup.Start(context.Background(), supervisor.ProfileTarget("media"), time.Minute)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if results[0].State != supervisor.StartStateFailed || results[0].Err == nil {
		t.Fatalf("expected failed start, got %+v", results[0])
	}
	if table.Exists("media") {
		t.Fatal("expected no record after failed launch")
	}
}

func TestStartUnknownProfile(t *testing.T) {
	syncer := &fakeSyncer{}
	launcher := &fakeLauncher{}
	sup, _ := newSupervisor(t, supervisor.Options{Syncer: syncer, Launcher: launcher})

	results, err := sup.Start(context.Background(), supervisor.ProfileTarget("ghost"), time.Minute)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if results[0].State != supervisor.StartStateNotFound || !errors.Is(results[0].Err, supervisor.ErrProfileNotFound) {
		t.Fatalf("expected not found result, got %+v", results[0])
	}
	if len(launcher.specs) != 0 || syncer.checks != 0 {
		t.Fatalf("expected no launch or tool check, got %d launches %d checks", len(launcher.specs), syncer.checks)
	}
}

func TestStartRequiresTool(t *testing.T) {
	syncer := &fakeSyncer{checkErr: rclone.ErrToolUnavailable}
	launcher := &fakeLauncher{}
	sup, table := newSupervisor(t, supervisor.Options{Syncer: syncer, Launcher: launcher})

	if _, err := sup.Start(context.Background(), supervisor.AllTarget(), time.Minute); !errors.Is(err, rclone.ErrToolUnavailable) {
		t.Fatalf("expected ErrToolUnavailable, got %v", err)
	}
	if len(launcher.specs) != 0 {
		t.Fatal("expected no launch without the tool")
	}
	if ids, _ := table.List(); len(ids) != 0 {
		t.Fatalf("expected empty registry, got %v", ids)
	}
}

func TestStartRejectsShortInterval(t *testing.T) {
	sup, _ := newSupervisor(t, supervisor.Options{})
	if _, err := sup.Start(context.Background(), supervisor.AllTarget(), 500*time.Millisecond); err == nil {
		t.Fatal("expected error for sub-second interval")
	}
}

func TestSyncContinuesPastFailures(t *testing.T) {
	syncer := &fakeSyncer{fail: map[string]error{"docs": errors.New("rclone exited with status 1")}}
	sup, _ := newSupervisor(t, supervisor.Options{Syncer: syncer})

	results, err := sup.Sync(context.Background(), supervisor.AllTarget())
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if len(results) != 2 || results[0].Err == nil || results[1].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if !reflect.DeepEqual(syncer.synced, []string{"docs", "media"}) {
		t.Fatalf("unexpected sync order: %v", syncer.synced)
	}
}

func TestSyncMissingToolIsFatal(t *testing.T) {
	syncer := &fakeSyncer{checkErr: rclone.ErrToolUnavailable}
	sup, _ := newSupervisor(t, supervisor.Options{Syncer: syncer})

	if _, err := sup.Sync(context.Background(), supervisor.ProfileTarget("docs")); !errors.Is(err, rclone.ErrToolUnavailable) {
		t.Fatalf("expected ErrToolUnavailable, got %v", err)
	}
	if len(syncer.synced) != 0 {
		t.Fatalf("expected no sync attempt, got %v", syncer.synced)
	}
}

func TestStopAllIteratesConfiguredProfiles(t *testing.T) {
	stopper := &fakeStopper{result: procctl.Result{Outcome: procctl.Stopped}}
	sup, table := newSupervisor(t, supervisor.Options{Stopper: stopper})
	if err := table.Create("media", 77); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	results, err := sup.Stop(supervisor.AllTarget())
	if err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if len(results) != 2 || results[0].Profile != "docs" || results[1].Profile != "media" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].Outcome != procctl.NotRunning || results[1].Outcome != procctl.Stopped {
		t.Fatalf("unexpected outcomes: %v %v", results[0].Outcome, results[1].Outcome)
	}
	if !reflect.DeepEqual(stopper.stopped, []string{"media"}) {
		t.Fatalf("expected only the recorded profile to be signalled, got %v", stopper.stopped)
	}
}

func TestStopByNameIgnoresConfiguration(t *testing.T) {
	sup, table := newSupervisor(t, supervisor.Options{})
	if err := table.Create("retired", 0); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	results, err := sup.Stop(supervisor.ProfileTarget("retired"))
	if err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if results[0].Profile != "retired" || results[0].Outcome != procctl.Failed {
		t.Fatalf("expected refused stop for pid 0, got %+v", results[0])
	}
	if !table.Exists("retired") {
		t.Fatal("expected record kept after failed stop")
	}
}

func TestStopNotRunningLeavesFilesystemUntouched(t *testing.T) {
	registryDir := filepath.Join(t.TempDir(), ".pids")
	sup, _ := newSupervisor(t, supervisor.Options{Table: registry.New(registryDir)})

	for _, target := range []supervisor.Target{supervisor.ProfileTarget("media"), supervisor.AllTarget()} {
		results, err := sup.Stop(target)
		if err != nil {
			t.Fatalf("Stop(%s) returned error: %v", target, err)
		}
		for _, result := range results {
			if result.Outcome != procctl.NotRunning {
				t.Fatalf("Stop(%s): expected not running for %s, got %v", target, result.Profile, result.Outcome)
			}
		}
	}
	if _, err := os.Stat(registryDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected registry directory to stay absent, stat returned %v", err)
	}
}

func TestStatusListsRecordsWithoutLivenessCheck(t *testing.T) {
	sup, table := newSupervisor(t, supervisor.Options{})
	if statuses, err := sup.Status(); err != nil || len(statuses) != 0 {
		t.Fatalf("expected empty status, got %v (%v)", statuses, err)
	}
	for name, pid := range map[string]int{"media": 999999, "docs": 42} {
		if err := table.Create(name, pid); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	statuses, err := sup.Status()
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	want := []supervisor.WatcherStatus{{Profile: "docs", PID: 42}, {Profile: "media", PID: 999999}}
	if !reflect.DeepEqual(statuses, want) {
		t.Fatalf("unexpected statuses: got %+v want %+v", statuses, want)
	}
}

func TestRunLoopsUntilCancelled(t *testing.T) {
	syncer := &fakeSyncer{}
	sup, table := newSupervisor(t, supervisor.Options{Syncer: syncer})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx, supervisor.ProfileTarget("docs"), time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	if syncer.checks != 1 {
		t.Fatalf("expected one tool check, got %d", syncer.checks)
	}
	if ids, _ := table.List(); len(ids) != 0 {
		t.Fatalf("run mode must not touch the registry, got %v", ids)
	}
}

func TestRunUnknownProfile(t *testing.T) {
	sup, _ := newSupervisor(t, supervisor.Options{})
	if err := sup.Run(context.Background(), supervisor.ProfileTarget("ghost"), time.Second); !errors.Is(err, supervisor.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestExecLauncherRequiresExecutable(t *testing.T) {
	if _, err := (supervisor.ExecLauncher{}).Launch(supervisor.LaunchSpec{Interval: time.Minute}); err == nil {
		t.Fatal("expected error for empty executable")
	}
}
