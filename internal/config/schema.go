package config

// Config is the top-level catalogctl configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Log      LogConfig      `mapstructure:"log"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// APIConfig holds catalog server connection settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig controls the diagnostic log. Best-effort cleanup failures land
// here rather than on screen, where they would corrupt the TUI.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// CacheConfig locates the local cover image cache.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultsConfig holds default values for operations.
type DefaultsConfig struct {
	PerPage int `mapstructure:"per_page"` // 0 = server default
}
