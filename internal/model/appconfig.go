package model

// AppConfig holds application-wide preferences.
type AppConfig struct {
	Pool PoolSettings `json:"pool" yaml:"pool"`

	// Storage and service
	BacklogPath string `json:"backlog_path" yaml:"backlog_path"` // Empty means <config dir>/backlog.json
	ListenAddr  string `json:"listen_addr" yaml:"listen_addr"`

	// Application preferences
	Theme string `json:"theme" yaml:"theme"` // "light", "dark", "system"
	Debug bool   `json:"debug" yaml:"debug"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Pool:        DefaultPoolSettings(),
		BacklogPath: "",
		ListenAddr:  ":8080",
		Theme:       "system",
		Debug:       false,
	}
}

// Normalize replaces invalid values with defaults.
func (c AppConfig) Normalize() AppConfig {
	c.Pool = c.Pool.Normalize()
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultAppConfig().ListenAddr
	}
	switch c.Theme {
	case "light", "dark", "system":
	default:
		c.Theme = "system"
	}
	return c
}
