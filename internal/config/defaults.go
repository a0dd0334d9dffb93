package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dex.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded defaults, used when the embedded YAML
// cannot be parsed and to fill fields a user config leaves out.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8000/api",
			Timeout:  15 * time.Second,
			MaxPages: 200,
		},
		Browse: BrowseConfig{
			PerPage:       24,
			DefaultRegion: "national",
		},
		Storage: StorageConfig{
			DBPath: "~/.dex/roster.db",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		HTTP: HTTPConfig{
			Address:  ":8080",
			MaxLimit: 72,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
