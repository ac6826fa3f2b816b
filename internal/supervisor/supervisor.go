package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lazycloud/internal/config"
	"lazycloud/internal/logging"
	"lazycloud/internal/procctl"
	"lazycloud/internal/registry"
	"lazycloud/internal/watcher"
)

// ErrProfileNotFound reports a named profile missing from the configuration.
var ErrProfileNotFound = errors.New("profile not found")

// MinInterval is the shortest accepted watch interval.
const MinInterval = time.Second

// Syncer checks for and runs the external sync tool.
type Syncer interface {
	Check(ctx context.Context) error
	Sync(ctx context.Context, p config.Profile) error
}

// Stopper terminates the watcher recorded for a profile.
type Stopper interface {
	Stop(id string) procctl.Result
}

// Options configures a Supervisor.
type Options struct {
	Profiles []config.Profile
	Table    *registry.Table
	Syncer   Syncer
	// Launcher defaults to ExecLauncher.
	Launcher Launcher
	// Stopper defaults to a procctl.Controller over Table.
	Stopper Stopper
	// Executable and ConfigPath build the run-mode command line.
	Executable string
	ConfigPath string
	Logger     *slog.Logger
}

// Supervisor coordinates sync, start, stop, and status requests.
type Supervisor struct {
	profiles   []config.Profile
	table      *registry.Table
	syncer     Syncer
	launcher   Launcher
	stopper    Stopper
	executable string
	configPath string
	baseLogger *slog.Logger
	logger     *slog.Logger
}

// New constructs a supervisor.
func New(opts Options) (*Supervisor, error) {
	if opts.Table == nil || opts.Syncer == nil {
		return nil, errors.New("supervisor requires a registry table and a syncer")
	}
	s := &Supervisor{
		profiles:   opts.Profiles,
		table:      opts.Table,
		syncer:     opts.Syncer,
		launcher:   opts.Launcher,
		stopper:    opts.Stopper,
		executable: opts.Executable,
		configPath: opts.ConfigPath,
		baseLogger: opts.Logger,
		logger:     logging.NewComponentLogger(opts.Logger, "supervisor"),
	}
	if s.launcher == nil {
		s.launcher = ExecLauncher{}
	}
	if s.stopper == nil {
		s.stopper = procctl.NewController(opts.Table)
	}
	return s, nil
}

// Target selects a single named profile or every configured profile.
type Target struct {
	Name string
	All  bool
}

// ProfileTarget selects the named profile.
func ProfileTarget(name string) Target { return Target{Name: name} }

// AllTarget selects every configured profile.
func AllTarget() Target { return Target{All: true} }

func (t Target) String() string {
	if t.All {
		return "all profiles"
	}
	return fmt.Sprintf("profile %q", t.Name)
}

// resolve returns the targeted profiles in configuration order, or the name
// that could not be found.
func (s *Supervisor) resolve(target Target) ([]config.Profile, error) {
	if target.All {
		return s.profiles, nil
	}
	for _, p := range s.profiles {
		if p.Name == target.Name {
			return []config.Profile{p}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, target.Name)
}

// SyncResult reports a single foreground sync.
type SyncResult struct {
	Profile string
	Err     error
}

// Sync runs the sync tool once per targeted profile, in configuration order.
// A missing tool aborts before any sync; every other failure is reported in
// that profile's result.
func (s *Supervisor) Sync(ctx context.Context, target Target) ([]SyncResult, error) {
	profiles, err := s.resolve(target)
	if err != nil {
		return []SyncResult{{Profile: target.Name, Err: err}}, nil
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	if err := s.syncer.Check(ctx); err != nil {
		return nil, err
	}

	results := make([]SyncResult, 0, len(profiles))
	for _, p := range profiles {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		err := s.syncer.Sync(ctx, p)
		if err != nil {
			s.logger.Debug("foreground sync failed", logging.String(logging.FieldProfile, p.Name), logging.Error(err))
		}
		results = append(results, SyncResult{Profile: p.Name, Err: err})
	}
	return results, nil
}

// StartState describes the outcome of starting one watcher.
type StartState string

const (
	StartStateStarted        StartState = "started"
	StartStateAlreadyRunning StartState = "already_running"
	StartStateNotFound       StartState = "not_found"
	StartStateFailed         StartState = "failed"
)

// StartResult captures one watcher start. PID is set whenever a process was
// spawned, including when registering it failed and it is running untracked.
type StartResult struct {
	Profile string
	State   StartState
	PID     int
	Err     error
}

// Start spawns and registers a detached watcher per targeted profile that has
// no record yet.
func (s *Supervisor) Start(ctx context.Context, target Target, interval time.Duration) ([]StartResult, error) {
	if interval < MinInterval {
		return nil, fmt.Errorf("watch interval must be at least %s, got %s", MinInterval, interval)
	}
	profiles, err := s.resolve(target)
	if err != nil {
		return []StartResult{{Profile: target.Name, State: StartStateNotFound, Err: err}}, nil
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	if err := s.syncer.Check(ctx); err != nil {
		return nil, err
	}

	results := make([]StartResult, 0, len(profiles))
	for _, p := range profiles {
		result, err := s.startOne(p.Name, interval)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Supervisor) startOne(name string, interval time.Duration) (StartResult, error) {
	unlock, err := s.table.Lock()
	if err != nil {
		return StartResult{}, err
	}
	defer unlock()

	if s.table.Exists(name) {
		return StartResult{Profile: name, State: StartStateAlreadyRunning}, nil
	}

	pid, err := s.launcher.Launch(LaunchSpec{
		Executable: s.executable,
		ConfigPath: s.configPath,
		Profile:    name,
		Interval:   interval,
	})
	if err != nil {
		return StartResult{Profile: name, State: StartStateFailed, PID: pid, Err: err}, nil
	}
	if err := s.table.Create(name, pid); err != nil {
		s.logger.Warn("watcher running untracked",
			logging.String(logging.FieldProfile, name),
			logging.Int(logging.FieldPID, pid),
			logging.Error(err),
		)
		return StartResult{Profile: name, State: StartStateFailed, PID: pid, Err: fmt.Errorf("register watcher pid %d: %w", pid, err)}, nil
	}
	s.logger.Debug("watcher registered",
		logging.String(logging.FieldProfile, name),
		logging.Int(logging.FieldPID, pid),
	)
	return StartResult{Profile: name, State: StartStateStarted, PID: pid}, nil
}

// StopResult captures one watcher stop.
type StopResult struct {
	Profile string
	procctl.Result
}

// Stop terminates the watcher of each targeted profile. A single target is
// stopped by name even when the profile is no longer configured. Profiles
// without a record report NotRunning and leave the filesystem untouched.
func (s *Supervisor) Stop(target Target) ([]StopResult, error) {
	names := []string{target.Name}
	if target.All {
		names = make([]string, 0, len(s.profiles))
		for _, p := range s.profiles {
			names = append(names, p.Name)
		}
	}

	results := make([]StopResult, 0, len(names))
	for _, name := range names {
		// No record means nothing to signal; skip the lock so the registry
		// directory is never created by a stop.
		if !s.table.Exists(name) {
			results = append(results, StopResult{Profile: name, Result: procctl.Result{Outcome: procctl.NotRunning}})
			continue
		}
		unlock, err := s.table.Lock()
		if err != nil {
			return results, err
		}
		result := s.stopper.Stop(name)
		_ = unlock()
		if result.Outcome == procctl.Failed {
			s.logger.Debug("stop failed", logging.String(logging.FieldProfile, name), logging.Error(result.Err))
		}
		results = append(results, StopResult{Profile: name, Result: result})
	}
	return results, nil
}

// WatcherStatus describes one registry record.
type WatcherStatus struct {
	Profile string
	PID     int
	Err     error
}

// Status lists every recorded watcher as running. Liveness is not checked.
func (s *Supervisor) Status() ([]WatcherStatus, error) {
	ids, err := s.table.List()
	if err != nil {
		return nil, err
	}
	statuses := make([]WatcherStatus, 0, len(ids))
	for _, id := range ids {
		pid, err := s.table.Read(id)
		statuses = append(statuses, WatcherStatus{Profile: id, PID: pid, Err: err})
	}
	return statuses, nil
}

// Run is the watcher process body: it loops over the targeted profiles until
// ctx is cancelled. It never touches the registry.
func (s *Supervisor) Run(ctx context.Context, target Target, interval time.Duration) error {
	if interval < MinInterval {
		return fmt.Errorf("watch interval must be at least %s, got %s", MinInterval, interval)
	}
	profiles, err := s.resolve(target)
	if err != nil {
		return err
	}
	if err := s.syncer.Check(ctx); err != nil {
		return err
	}

	logger := s.baseLogger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	if !target.All {
		logger = logger.With(logging.String(logging.FieldProfile, target.Name))
	}
	return watcher.New(profiles, interval, s.syncer, logger).Run(ctx)
}
