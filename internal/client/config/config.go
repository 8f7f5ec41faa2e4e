package config

import "time"

// Config holds runtime settings for the dysh CLI.
//
// Fields:
//   - APIBaseURL: base URL of the dysh backend.
//   - DatabasePath: SQLite file holding the sealed credential.
//   - KeyFile: device key sealing the credential at rest.
//   - UsePassphrase: derive the sealing key from a passphrase instead of KeyFile.
//   - RequestTimeout: per-request HTTP timeout.
//   - RefreshTimeout: bound on a token refresh exchange.
//   - LogLevel, LogBackend: see logging.New.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	KeyFile        string
	UsePassphrase  bool
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
	LogLevel       string
	LogBackend     string
}

const DefaultAPIBaseURL = "https://dysh-app-eu5iz.ondigitalocean.app"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DatabasePath = "dysh.db"
	c.KeyFile = "dysh.key"
	c.UsePassphrase = false
	c.RequestTimeout = 30 * time.Second
	c.RefreshTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
