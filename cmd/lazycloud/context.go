package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lazycloud/internal/config"
	"lazycloud/internal/logging"
	"lazycloud/internal/rclone"
	"lazycloud/internal/registry"
	"lazycloud/internal/supervisor"
)

// launcher spawns watchers for `watch`; tests replace it.
var launcher supervisor.Launcher = supervisor.ExecLauncher{}

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPathFlag() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(c.configPathFlag())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// newSupervisor wires the supervisor for cmd, sending rclone output to the
// command's streams.
func (c *commandContext) newSupervisor(cmd *cobra.Command) (*supervisor.Supervisor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	executable, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	runner := rclone.NewRunner(cfg.RcloneBinary(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
	return supervisor.New(supervisor.Options{
		Profiles:   cfg.Sync,
		Table:      registry.New(cfg.RegistryDir()),
		Syncer:     runner,
		Launcher:   launcher,
		Executable: executable,
		ConfigPath: cfg.Path(),
		Logger:     logger,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
