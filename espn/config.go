package espn

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default configuration values
const (
	DefaultSiteAPIBaseURL    = "https://site.api.espn.com"
	DefaultCoreAPIBaseURL    = "https://sports.core.api.espn.com"
	DefaultTimeout           = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryBackoff      = time.Second
	DefaultUserAgent         = "espnapi/0.1.0"
	DefaultRateLimitRequests = 60
	DefaultRateLimitPeriod   = 60 * time.Second
)

// Config holds the immutable client settings. Build one with NewConfig;
// clients copy it at construction.
type Config struct {
	SiteAPIBaseURL    string        `validate:"required,url"`
	CoreAPIBaseURL    string        `validate:"required,url"`
	Timeout           time.Duration `validate:"gt=0"`
	MaxRetries        int           `validate:"gte=0"`
	RetryBackoff      time.Duration `validate:"gt=0"`
	UserAgent         string
	RateLimitRequests int           `validate:"gt=0"`
	RateLimitPeriod   time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		SiteAPIBaseURL:    DefaultSiteAPIBaseURL,
		CoreAPIBaseURL:    DefaultCoreAPIBaseURL,
		Timeout:           DefaultTimeout,
		MaxRetries:        DefaultMaxRetries,
		RetryBackoff:      DefaultRetryBackoff,
		UserAgent:         DefaultUserAgent,
		RateLimitRequests: DefaultRateLimitRequests,
		RateLimitPeriod:   DefaultRateLimitPeriod,
	}
}

// ConfigOption overrides one field of DefaultConfig
type ConfigOption func(*Config)

// WithSiteAPIBaseURL sets the base URL of the site API domain
func WithSiteAPIBaseURL(u string) ConfigOption {
	return func(c *Config) { c.SiteAPIBaseURL = u }
}

// WithCoreAPIBaseURL sets the base URL of the core API domain
func WithCoreAPIBaseURL(u string) ConfigOption {
	return func(c *Config) { c.CoreAPIBaseURL = u }
}

// WithTimeout sets the per-attempt transport timeout
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) { c.Timeout = d }
}

// WithMaxRetries sets the total number of attempts per call
func WithMaxRetries(n int) ConfigOption {
	return func(c *Config) { c.MaxRetries = n }
}

// WithRetryBackoff sets the backoff multiplier and floor
func WithRetryBackoff(d time.Duration) ConfigOption {
	return func(c *Config) { c.RetryBackoff = d }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) { c.UserAgent = ua }
}

// WithRateLimitHint sets the advertised request budget
func WithRateLimitHint(requests int, period time.Duration) ConfigOption {
	return func(c *Config) {
		c.RateLimitRequests = requests
		c.RateLimitPeriod = period
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...ConfigOption) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field and returns a KindValidation *Error naming
// the offending fields.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError("invalid configuration", nil, err)
	}

	fields := make([]string, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return newValidationError("invalid configuration: "+strings.Join(msgs, "; "), fields, nil)
}

// baseURL returns the base URL for a domain without a trailing slash
func (c Config) baseURL(d Domain) string {
	base := c.SiteAPIBaseURL
	if d == DomainCore {
		base = c.CoreAPIBaseURL
	}
	return strings.TrimRight(base, "/")
}
