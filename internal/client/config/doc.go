// Package config loads runtime configuration for the dysh CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected with -c / -config or the
//     DYSH_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   local database path
//	-k string   device key file
//	-p          derive the storage key from a passphrase
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Timeouts use timex.Duration, so values can be either strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://dysh-app-eu5iz.ondigitalocean.app",
//	  "database_path": "dysh.db",
//	  "key_file": "dysh.key",
//	  "use_passphrase": false,
//	  "request_timeout": "30s",
//	  "refresh_timeout": "15s",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
package config
