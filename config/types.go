package config

import (
	"time"

	"github.com/s0up4200/espnapi/espn"
)

// Config represents the complete configuration structure
type Config struct {
	Client  ESPNConfig    `mapstructure:"client"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ESPNConfig holds the API client settings
type ESPNConfig struct {
	SiteAPIBaseURL    string        `mapstructure:"site_api_base_url"`
	CoreAPIBaseURL    string        `mapstructure:"core_api_base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	UserAgent         string        `mapstructure:"user_agent"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitPeriod   time.Duration `mapstructure:"rate_limit_period"`
	EnforceRateLimit  bool          `mapstructure:"enforce_rate_limit"`
}

// ClientConfig converts the section into a validated espn.Config
func (c ESPNConfig) ClientConfig() (espn.Config, error) {
	return espn.NewConfig(
		espn.WithSiteAPIBaseURL(c.SiteAPIBaseURL),
		espn.WithCoreAPIBaseURL(c.CoreAPIBaseURL),
		espn.WithTimeout(c.Timeout),
		espn.WithMaxRetries(c.MaxRetries),
		espn.WithRetryBackoff(c.RetryBackoff),
		espn.WithUserAgent(c.UserAgent),
		espn.WithRateLimitHint(c.RateLimitRequests, c.RateLimitPeriod),
	)
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format      string   `mapstructure:"format"`
	ShowDetails bool     `mapstructure:"show_details"`
	ShowLinks   bool     `mapstructure:"show_links"`
	Leagues     []string `mapstructure:"leagues"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
