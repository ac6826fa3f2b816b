package config

const (
	appDirName         = "lazycloud"
	configFileName     = "profiles.toml"
	registryDirName    = ".pids"
	defaultRcloneBin   = "rclone"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	configPathEnv      = "LAZYCLOUD_CONFIG"
	fallbackConfigRoot = "~/.config"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Rclone: Rclone{
			Binary: defaultRcloneBin,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
