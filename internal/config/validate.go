package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProfiles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProfiles() error {
	seen := make(map[string]int, len(c.Sync))
	for i, p := range c.Sync {
		if p.Name == "" {
			return fmt.Errorf("sync[%d].name must be set", i)
		}
		if err := validateProfileName(p.Name); err != nil {
			return fmt.Errorf("sync[%d].name: %w", i, err)
		}
		if prev, ok := seen[p.Name]; ok {
			return fmt.Errorf("sync[%d].name %q duplicates sync[%d]", i, p.Name, prev)
		}
		seen[p.Name] = i
		if p.From == "" {
			return fmt.Errorf("sync[%d].from must be set for profile %q", i, p.Name)
		}
		if p.To == "" {
			return fmt.Errorf("sync[%d].to must be set for profile %q", i, p.Name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// validateProfileName rejects names that cannot double as a registry file name.
func validateProfileName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("profile name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("profile name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("profile name %q must not contain path separators", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("profile name %q contains a NUL byte", name)
	}
	return nil
}
