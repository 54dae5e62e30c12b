// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"time"
)

// Token storage backends.
const (
	TokenStoreMemory = "memory"
	TokenStoreFile   = "file"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// AuthURL is the credential exchange endpoint.
	AuthURL string `koanf:"auth_url"`

	// GraphQLURL is the profile data endpoint.
	GraphQLURL string `koanf:"graphql_url"`

	// RequestTimeoutMS bounds every outbound request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// ErrorLogoutDelayMS is how long an errored session keeps its token
	// before being logged out. Zero disables the timer (manual logout only).
	ErrorLogoutDelayMS int `koanf:"error_logout_delay_ms"`

	// TokenStore selects the token backend: memory or file.
	TokenStore string `koanf:"token_store"`

	// TokenFile is the YAML file used by the file backend.
	TokenFile string `koanf:"token_file"`

	// SessionCookie names the cookie carrying the browser session id.
	SessionCookie string `koanf:"session_cookie"`

	// EnhancedCharts adds glow filters and gradient fills to the charts.
	EnhancedCharts bool `koanf:"enhanced_charts"`

	// MetricsNamespace and MetricsSubsystem prefix every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBucketsMS overrides the latency histogram buckets.
	MetricsBucketsMS []float64 `koanf:"metrics_buckets_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		AuthURL:            "https://learn.zone01oujda.ma/api/auth/signin",
		GraphQLURL:         "https://learn.zone01oujda.ma/api/graphql-engine/v1/graphql",
		RequestTimeoutMS:   10_000,
		ErrorLogoutDelayMS: 5_000,
		TokenStore:         TokenStoreMemory,
		TokenFile:          "zoneprofile-tokens.yaml",
		SessionCookie:      "zp_session",
		EnhancedCharts:     true,
		MetricsNamespace:   "zoneprofile",
		MetricsSubsystem:   "web",
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// ErrorLogoutDelay returns ErrorLogoutDelayMS as a duration.
func (c *Config) ErrorLogoutDelay() time.Duration {
	return time.Duration(c.ErrorLogoutDelayMS) * time.Millisecond
}
