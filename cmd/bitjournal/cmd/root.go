package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/bitjournal/bitunix"
	"github.com/rustyeddy/bitjournal/config"
	"github.com/rustyeddy/bitjournal/journal"
	"github.com/rustyeddy/bitjournal/pkg/logging"
	"github.com/rustyeddy/bitjournal/service"
)

var rootCmd = &cobra.Command{
	Use:   "bitjournal",
	Short: "A per-user Bitunix perps trading journal",
	Long: `Bitjournal keeps a local, deduplicated journal of a trader's executed
Bitunix futures trades.

It provides commands for:
  - Registering and revoking per-user Bitunix API keys
  - Syncing recent fills into the local SQLite journal
  - Viewing the journal with symbol and day-window filters
  - Attaching notes to individual trades
  - Exporting a user's journal as CSV

Each command acts on behalf of one user identity (--user), the same way
a chat front end would dispatch per-user requests.`,
}

var (
	cfgFile string
	dbPath  string
	userID  string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to the SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user identity the operation acts for")
}

func loadConfig() (*config.Config, error) {
	// A .env next to the binary can hold BITJOURNAL_* overrides.
	_ = godotenv.Load()

	var cfg *config.Config
	if cfgFile != "" {
		c, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.Default()
		cfg.ApplyEnv()
	}

	if dbPath != "" {
		cfg.Journal.DBPath = dbPath
	}
	return cfg, nil
}

// openService wires the store, exchange client, and service for one
// command invocation. The returned closer releases the DB handle.
func openService() (*service.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	store, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}

	client := bitunix.NewClient(store, cfg.Exchange.BaseURL)
	svc := service.New(store, client)

	return svc, func() { _ = store.Close() }, nil
}

func requireUser() error {
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}
