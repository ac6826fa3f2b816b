package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProfiles()
	c.normalizeRclone()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	c.Paths.StateDir = strings.TrimSpace(c.Paths.StateDir)
	if c.Paths.StateDir == "" {
		return nil
	}
	expanded, err := expandPath(c.Paths.StateDir)
	if err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Paths.StateDir = expanded
	return nil
}

// Source and destination are left unexpanded: either may be an rclone remote
// such as "gdrive:projects".
func (c *Config) normalizeProfiles() {
	for i := range c.Sync {
		p := &c.Sync[i]
		p.Name = strings.TrimSpace(p.Name)
		p.From = strings.TrimSpace(p.From)
		p.To = strings.TrimSpace(p.To)
		p.Mode = strings.TrimSpace(p.Mode)
		p.Flags = strings.TrimSpace(p.Flags)
	}
}

func (c *Config) normalizeRclone() {
	c.Rclone.Binary = strings.TrimSpace(c.Rclone.Binary)
	if c.Rclone.Binary == "" {
		c.Rclone.Binary = defaultRcloneBin
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Output = strings.TrimSpace(c.Logging.Output)
	switch c.Logging.Output {
	case "", "stderr", "stdout":
		return nil
	}
	expanded, err := expandPath(c.Logging.Output)
	if err != nil {
		return fmt.Errorf("logging.output: %w", err)
	}
	c.Logging.Output = expanded
	return nil
}
