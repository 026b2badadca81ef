package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/espnapi/espn"
	"github.com/s0up4200/espnapi/model"
)

// EnvPrefix prefixes environment overrides, e.g. ESPN_CLIENT_TIMEOUT=10s
const EnvPrefix = "ESPN"

// Load loads the configuration. An explicit path must exist; otherwise a
// missing file is fine and defaults plus environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".espnapi"))
		}
		v.AddConfigPath("/etc/espnapi/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors espn.DefaultConfig so every key is known to viper
// and can be overridden from the environment.
func setDefaults(v *viper.Viper) {
	d := espn.DefaultConfig()
	v.SetDefault("client.site_api_base_url", d.SiteAPIBaseURL)
	v.SetDefault("client.core_api_base_url", d.CoreAPIBaseURL)
	v.SetDefault("client.timeout", d.Timeout)
	v.SetDefault("client.max_retries", d.MaxRetries)
	v.SetDefault("client.retry_backoff", d.RetryBackoff)
	v.SetDefault("client.user_agent", d.UserAgent)
	v.SetDefault("client.rate_limit_requests", d.RateLimitRequests)
	v.SetDefault("client.rate_limit_period", d.RateLimitPeriod)
	v.SetDefault("client.enforce_rate_limit", false)

	// Output defaults
	v.SetDefault("output.format", "table")
	v.SetDefault("output.show_details", false)
	v.SetDefault("output.show_links", false)
	v.SetDefault("output.leagues", []string{"nba", "nfl", "mlb", "nhl"})

	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if _, err := cfg.Client.ClientConfig(); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Output.Format != "table" && cfg.Output.Format != "json" {
		return fmt.Errorf("invalid output.format: %s (must be 'table' or 'json')", cfg.Output.Format)
	}

	for _, name := range cfg.Output.Leagues {
		if _, err := model.ParseLeague(name); err != nil {
			return fmt.Errorf("output.leagues: %w", err)
		}
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	return nil
}
