package config

import "time"

// Config holds runtime settings for the ScholarHub CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the ScholarHub API.
//   - AppURL: base URL of the web app, used for shareable links.
//   - StorageDriver: "sqlite", "memory" or "redis" for the session store.
//   - StorageDSN: SQLite path; empty means a file in the user config dir.
//   - RequestTimeout: per-request limit, zero for none.
//   - MetricsAddr: if set, /metrics is served on this address.
//   - ExpireSessionOnNetworkError: whether a failed re-validation caused by
//     the network logs the user out.
type Config struct {
	APIBaseURL                  string
	AppURL                      string
	StorageDriver               string
	StorageDSN                  string
	RedisAddr                   string
	RedisPassword               string
	RedisPrefix                 string
	RequestTimeout              time.Duration
	LogLevel                    string
	LogFormat                   string
	MetricsAddr                 string
	ExpireSessionOnNetworkError bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.AppURL = "http://localhost:5173"
	c.StorageDriver = "sqlite"
	c.StorageDSN = ""
	c.RedisAddr = "localhost:6379"
	c.RedisPassword = ""
	c.RedisPrefix = "scholarhub:"
	c.RequestTimeout = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsAddr = ""
	c.ExpireSessionOnNetworkError = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
