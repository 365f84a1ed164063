// Package config loads runtime configuration for the ScholarHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     JSON, or YAML when the name ends in .yaml/.yml.
//  3. SCHOLARHUB_* environment variables (see parseEnv), optionally loaded
//     from a dotenv file given with -e or -env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-w string   web app URL
//	-s string   session storage driver
//	-d string   SQLite DSN
//	-t int      request timeout (seconds)
//	-l string   log level
//	-m string   metrics listen address
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "15s" or a
// number of seconds:
//
//	api_base_url: https://repo.example.ac.id
//	storage_driver: redis
//	redis_addr: 127.0.0.1:6379
//	request_timeout: 15s
//	expire_session_on_network_error: false
//
// # Environment
//
//	SCHOLARHUB_API_URL, SCHOLARHUB_APP_URL, SCHOLARHUB_STORAGE_DRIVER,
//	SCHOLARHUB_STORAGE_DSN, SCHOLARHUB_REDIS_ADDR, SCHOLARHUB_REDIS_PASSWORD,
//	SCHOLARHUB_REDIS_PREFIX, SCHOLARHUB_REQUEST_TIMEOUT (Go duration),
//	SCHOLARHUB_LOG_LEVEL, SCHOLARHUB_LOG_FORMAT, SCHOLARHUB_METRICS_ADDR,
//	SCHOLARHUB_EXPIRE_ON_NETWORK_ERROR (bool)
package config
