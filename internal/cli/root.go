package cli

import (
	"time"

	"github.com/spf13/cobra"

	"expenses/internal/config"
	apphttp "expenses/internal/http"
	applog "expenses/internal/log"
	"expenses/internal/store/memory"
)

type rootFlags struct {
	port     string
	seedFile string
	envFile  string
	logLevel string
}

// NewRootCommand returns the expenses command. Flags override the
// environment; the environment overrides the defaults.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootFlags{})
}

func newRootCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "expenses",
		Short:        "Expense tracker web app",
		Long:         "Serves the expense tracker: an add-expense form and a list filtered by year.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.port, "port", "p", "", "HTTP port (env PORT, default 8081)")
	cmd.Flags().StringVarP(&flags.seedFile, "seed-file", "s", "", "YAML file with the initial expenses (env SEED_FILE)")
	cmd.Flags().StringVarP(&flags.envFile, "env-file", "e", "", "Path to a .env file to load before reading the environment")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	return cmd
}

// applyFlags copies the flags the user actually set onto cfg.
func applyFlags(cmd *cobra.Command, flags *rootFlags) func(*config.Config) {
	return func(cfg *config.Config) {
		if cmd.Flags().Changed("port") {
			cfg.Port = flags.port
		}
		if cmd.Flags().Changed("seed-file") {
			cfg.SeedFile = flags.seedFile
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flags.logLevel
		}
	}
}

func run(cmd *cobra.Command, flags *rootFlags) error {
	if err := LoadEnvFile(flags.envFile); err != nil {
		return err
	}
	cfg, err := LoadAndValidateConfig(applyFlags(cmd, flags))
	if err != nil {
		return err
	}

	logger := SetupLogger(cfg.LogLevel)
	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Error("Startup failed", applog.FieldOperation, applog.OpStartup, applog.FieldError, err)
		return err
	}
	return Serve(cmd.Context(), logger, srv, cfg.ShutdownTimeout)
}

// newServer seeds the in-memory list and builds the HTTP server.
func newServer(cfg *config.Config, logger *applog.Logger) (*apphttp.Server, error) {
	st, err := memory.NewFromFile(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	logger.WithComponent(applog.ComponentStore).Info("Expense list seeded",
		applog.FieldOperation, applog.OpSeed,
		applog.FieldCount, st.Len(),
		"seed_file", cfg.SeedFile)

	srv := apphttp.NewServer(":"+cfg.Port, st, apphttp.Options{
		Logger:             logger,
		DefaultFilterYear:  cfg.DefaultFilterYear,
		FilterYears:        cfg.FilterYears,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16
	return srv, nil
}
