// Package config provides YAML-based configuration loading for dex.
package config

import "time"

// Config is the full dex configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Browse  BrowseConfig  `yaml:"browse"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// APIConfig points at the upstream Pokédex REST API.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	MaxPages int           `yaml:"max_pages"` // Stop following "next" links after this many pages
}

// BrowseConfig holds roster browser defaults.
type BrowseConfig struct {
	PerPage         int    `yaml:"per_page"`
	DefaultRegion   string `yaml:"default_region"`
	ShowActualStats bool   `yaml:"show_actual_stats"` // Start with min〜max ranges instead of base stats
}

// StorageConfig locates the local roster cache.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig configures `dex serve ssh`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// HTTPConfig configures `dex serve http`.
type HTTPConfig struct {
	Address  string `yaml:"address"`
	MaxLimit int    `yaml:"max_limit"`
}
