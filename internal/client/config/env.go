package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/scholarhub/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "SCHOLARHUB_"

// parseEnv overlays Config with SCHOLARHUB_* environment variables. A
// dotenv file named by -e/-env is loaded first; without the flag a ".env"
// in the working directory is used when present. Variables already set in
// the process environment win over the file. Panics on malformed values.
func parseEnv(cfg *Config) {
	loadDotenv(flagx.EnvFileFlag())

	strs := map[string]*string{
		"API_URL":        &cfg.APIBaseURL,
		"APP_URL":        &cfg.AppURL,
		"STORAGE_DRIVER": &cfg.StorageDriver,
		"STORAGE_DSN":    &cfg.StorageDSN,
		"REDIS_ADDR":     &cfg.RedisAddr,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"REDIS_PREFIX":   &cfg.RedisPrefix,
		"LOG_LEVEL":      &cfg.LogLevel,
		"LOG_FORMAT":     &cfg.LogFormat,
		"METRICS_ADDR":   &cfg.MetricsAddr,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}

	if v, ok := os.LookupEnv(envPrefix + "EXPIRE_ON_NETWORK_ERROR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.ExpireSessionOnNetworkError = b
	}
}

func loadDotenv(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
}
