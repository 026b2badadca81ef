package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/espnapi/config"
	"github.com/s0up4200/espnapi/display"
	"github.com/s0up4200/espnapi/espn"
	"github.com/s0up4200/espnapi/filter"
	"github.com/s0up4200/espnapi/model"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *espn.Client
	presets   *filter.Presets
	formatter = display.NewConsoleFormatter()

	// Command flags
	filterExpr   string
	preset       string
	outputFormat string
	showDetails  bool
	logLevel     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "espnapi",
	Short: "Query ESPN scoreboards, teams, events and athletes",
	Long: `espnapi is a CLI over ESPN's public site and core APIs. It prints
scoreboards, team lists, event summaries, league information and athlete
pages, optionally narrowed with expr filter expressions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnFinalize(closeApp)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table or json (default from config)")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show venue, records and other details")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level")
}

// addFilterFlags registers --filter and --preset on a listing command
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// loadApp loads the configuration, the logger and the filter presets
func loadApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if outputFormat != "" {
		if outputFormat != "table" && outputFormat != "json" {
			return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}
	if cmd.Flags().Changed("details") {
		cfg.Output.ShowDetails = showDetails
	}

	logger = setupLogger(cfg.Logging)

	presets = filter.NewPresets()
	if err := presets.Load(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}
	return nil
}

// initializeApp runs loadApp and creates the sync API client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadApp(cmd, args); err != nil {
		return err
	}

	clientCfg, err := cfg.Client.ClientConfig()
	if err != nil {
		return err
	}

	client, err = espn.NewClient(clientCfg, clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create ESPN client: %w", err)
	}

	logger.Debug().
		Str("site", clientCfg.SiteAPIBaseURL).
		Str("core", clientCfg.CoreAPIBaseURL).
		Int("max_retries", clientCfg.MaxRetries).
		Msg("ESPN client ready")

	return nil
}

func clientOptions() []espn.Option {
	opts := []espn.Option{espn.WithLogger(logger)}
	if cfg.Client.EnforceRateLimit {
		opts = append(opts, espn.WithRateLimit())
	}
	return opts
}

// closeApp releases the client's connections. It is registered as a cobra
// finalizer so it also runs when a command fails.
func closeApp() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Debug().Err(err).Msg("Failed to close ESPN client")
	}
	client = nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// resolveLeague applies the same rule as output.leagues in the config
func resolveLeague(name string) (*model.League, error) {
	return model.ParseLeague(name)
}

// activeFilter returns the --filter expression or --preset filter, nil if neither
func activeFilter() (filter.CompiledFilter, error) {
	f, err := presets.Resolve(filterExpr, preset)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	}
	return f, nil
}

func formatOptions() display.FormatOptions {
	return display.FormatOptions{
		ShowDetails: cfg.Output.ShowDetails,
		ShowLinks:   cfg.Output.ShowLinks,
	}
}

func jsonOutput() bool {
	return cfg.Output.Format == "json"
}

// printJSON writes v as indented JSON to stdout
func printJSON(v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// describeError turns taxonomy errors into short user-facing messages
func describeError(what string, err error) error {
	var apiErr *espn.Error
	switch {
	case errors.Is(err, espn.ErrNotFound):
		return fmt.Errorf("%s not found", what)
	case errors.Is(err, espn.ErrRateLimited):
		return fmt.Errorf("ESPN rate limit exceeded while fetching %s, try again later", what)
	case errors.As(err, &apiErr) && apiErr.StatusCode > 0:
		return fmt.Errorf("failed to fetch %s: %s (HTTP %d)", what, apiErr.Message, apiErr.StatusCode)
	default:
		return fmt.Errorf("failed to fetch %s: %w", what, err)
	}
}
