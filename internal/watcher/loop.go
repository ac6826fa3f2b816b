package watcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lazycloud/internal/config"
	"lazycloud/internal/logging"
	"lazycloud/internal/rclone"
)

// Syncer runs one synchronization for a profile.
type Syncer interface {
	Sync(ctx context.Context, p config.Profile) error
}

// Loop repeatedly syncs a fixed set of profiles.
type Loop struct {
	profiles []config.Profile
	interval time.Duration
	syncer   Syncer
	logger   *slog.Logger

	// sleep waits for d or until ctx is done, reporting whether the full
	// interval elapsed.
	sleep func(ctx context.Context, d time.Duration) bool
}

// New builds a loop over profiles. Each pass syncs every profile in order and
// is followed by a sleep of exactly interval.
func New(profiles []config.Profile, interval time.Duration, syncer Syncer, logger *slog.Logger) *Loop {
	return &Loop{
		profiles: append([]config.Profile(nil), profiles...),
		interval: interval,
		syncer:   syncer,
		logger:   logging.NewComponentLogger(logger, "watcher"),
		sleep:    sleepContext,
	}
}

// Run executes passes until ctx is cancelled. It returns nil on cancellation;
// it has no other exit.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("watcher started",
		logging.Int("profiles", len(l.profiles)),
		logging.Duration("interval", l.interval),
		logging.String(logging.FieldEventType, "watcher_started"),
	)
	for pass := 1; ; pass++ {
		l.runPass(ctx, pass)
		if !l.sleep(ctx, l.interval) {
			l.logger.Info("watcher shutting down",
				logging.Int("passes", pass),
				logging.String(logging.FieldEventType, "watcher_stopped"),
			)
			return nil
		}
	}
}

func (l *Loop) runPass(ctx context.Context, pass int) {
	for _, profile := range l.profiles {
		if ctx.Err() != nil {
			return
		}
		l.logger.Info("watching profile",
			logging.String(logging.FieldProfile, profile.Name),
			logging.Int("pass", pass),
		)
		err := l.syncer.Sync(ctx, profile)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return
		case errors.Is(err, rclone.ErrUnknownMode):
			l.logger.Warn("skipping profile with unknown mode",
				logging.String(logging.FieldProfile, profile.Name),
				logging.String("mode", profile.Mode),
			)
		default:
			l.logger.Error("sync failed",
				logging.String(logging.FieldProfile, profile.Name),
				logging.Int("pass", pass),
				logging.Error(err),
			)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
