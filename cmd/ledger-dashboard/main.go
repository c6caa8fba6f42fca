package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/monsTa-b0y/exp-dashboard/internal/categorizer"
	"github.com/monsTa-b0y/exp-dashboard/internal/config"
	"github.com/monsTa-b0y/exp-dashboard/internal/loader"
	"github.com/monsTa-b0y/exp-dashboard/internal/logger"
)

var (
	configPath string
	logLevel   string
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ledger-dashboard",
	Short: "Categorize and summarize expenditure from transaction exports",
	Long: `Ledger Dashboard loads a CSV export of bank transactions, assigns each
row a category from a configurable keyword table, and summarizes spending by
category, tag and day. Run it as an HTTP service or print a one-off report.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(serveCmd, reportCmd, categoriesCmd)
}

// app holds what every subcommand needs.
type app struct {
	cfg         *config.Config
	log         zerolog.Logger
	loader      *loader.Loader
	categorizer *categorizer.Categorizer
}

func setup() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return &app{
		cfg:         cfg,
		log:         logger.New(os.Stderr, level, cfg.LogFormat),
		loader:      loader.New(cfg.DateLayout),
		categorizer: categorizer.FromConfig(cfg),
	}, nil
}
