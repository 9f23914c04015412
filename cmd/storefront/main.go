package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/erauner12/storefront/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	version = "0.1.0"
)

// options are the persistent flags shared by every command
type options struct {
	configPath string
	debug      bool
	logLevel   string
	store      string
	storePath  string
	apiURL     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, a := newRootCmd()
	err := root.ExecuteContext(ctx)
	if cerr := a.Close(); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to close session storage")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The returned app is populated once a
// command runs and must be closed by the caller.
func newRootCmd() (*cobra.Command, *app) {
	opts := &options{}
	a := &app{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Shop from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			setupLogging(cfg)

			log.Debug().
				Str("version", version).
				Str("apiBaseUrl", cfg.APIBaseURL).
				Str("store", cfg.Store.Backend).
				Msg("starting storefront")

			return a.init(cmd.Context(), cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file (JSON or YAML)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.store, "store", "", "Session store backend (file, keyring, sqlite, memory)")
	flags.StringVar(&opts.storePath, "store-path", "", "Session file or database path")
	flags.StringVar(&opts.apiURL, "api-url", "", "Storefront API base URL")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProductsCmd(a),
		newCartCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
		newAccountCmd(a),
	)

	return root, a
}

// loadConfig loads the configuration from file and environment
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		// Try to load from environment only
		cfg, err = config.LoadFromEnvironment()
	}

	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides BEFORE validation
	if opts.debug {
		cfg.Debug = true
		// Auto-set log level to debug when --debug flag is used
		// (unless user explicitly set a different level)
		if !cmd.Flags().Changed("log-level") {
			cfg.LogLevel = "debug"
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if opts.store != "" {
		cfg.Store.Backend = opts.store
	}
	if opts.storePath != "" {
		cfg.Store.Path = opts.storePath
	}
	if opts.apiURL != "" {
		cfg.APIBaseURL = opts.apiURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// setupLogging configures the global logger
func setupLogging(cfg *config.Config) {
	zerolog.SetGlobalLevel(parseLogLevel(cfg.LogLevel))

	if cfg.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Caller().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// parseLogLevel falls back to info for unknown or disabled levels
func parseLogLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
