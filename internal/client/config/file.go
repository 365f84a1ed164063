package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/scholarhub/internal/flagx"
	"github.com/dmitrijs2005/scholarhub/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for decoding config files. Absent
// keys leave the corresponding Config field untouched.
type FileConfig struct {
	APIBaseURL                  string          `json:"api_base_url" yaml:"api_base_url"`
	AppURL                      string          `json:"app_url" yaml:"app_url"`
	StorageDriver               string          `json:"storage_driver" yaml:"storage_driver"`
	StorageDSN                  string          `json:"storage_dsn" yaml:"storage_dsn"`
	RedisAddr                   string          `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword               string          `json:"redis_password" yaml:"redis_password"`
	RedisPrefix                 string          `json:"redis_prefix" yaml:"redis_prefix"`
	RequestTimeout              *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel                    string          `json:"log_level" yaml:"log_level"`
	LogFormat                   string          `json:"log_format" yaml:"log_format"`
	MetricsAddr                 string          `json:"metrics_addr" yaml:"metrics_addr"`
	ExpireSessionOnNetworkError *bool           `json:"expire_session_on_network_error" yaml:"expire_session_on_network_error"`
}

// parseFile overlays Config with values from the file named by -c/-config.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.AppURL, fc.AppURL)
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.StorageDSN, fc.StorageDSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPassword, fc.RedisPassword)
	setString(&cfg.RedisPrefix, fc.RedisPrefix)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)

	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.ExpireSessionOnNetworkError != nil {
		cfg.ExpireSessionOnNetworkError = *fc.ExpireSessionOnNetworkError
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
