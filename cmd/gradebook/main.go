package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gradebook/internal/config"
	"gradebook/internal/service"
	"gradebook/internal/store"
	"gradebook/internal/store/jsonfile"
	"gradebook/internal/store/sqlite"
)

var (
	// Global flags
	cfgPath     string
	dataPath    string
	backendName string
	verbose     bool

	// Wired in PersistentPreRunE
	logger *zap.Logger
	cfg    *config.Config
	st     store.Store
	svc    *service.RosterService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gradebook",
	Short: "Manage a roster of student grades from the command line",
	Long: `gradebook maintains a local roster of student records with per-subject
grades. Records persist to a JSON file by default (SQLite optional), and the
roster can be exchanged with CSV, JSON, YAML, and XLSX files.

Run without arguments to start the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		st, err = openStore(cfg)
		if err != nil {
			return err
		}

		svc = service.NewRosterService(st, cfg, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			if err := st.Close(); err != nil {
				logger.Warn("close store", zap.Error(err))
			}
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive menu
		return runInteractive(cmd)
	},
}

// loadConfig loads the config file and applies command-line overrides
func loadConfig() (*config.Config, error) {
	var (
		c    *config.Config
		from string
		err  error
	)
	if cfgPath != "" {
		c, from, err = config.LoadFromPath(cfgPath)
	} else {
		c, from, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if from != "" {
		logger.Debug("loaded config", zap.String("path", from))
	}

	if backendName != "" {
		c.Storage.Backend = config.Backend(backendName)
		// Re-derive the default data path for the chosen backend.
		c.Storage.Path = ""
	}
	if dataPath != "" {
		c.Storage.Path = dataPath
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case config.BackendSQLite:
			c.Storage.Path = "./grades.db"
		default:
			c.Storage.Path = "./grades.json"
		}
	}

	return c, c.Validate()
}

// openStore opens the configured storage backend
func openStore(c *config.Config) (store.Store, error) {
	switch c.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.Open(c.Storage.Path)
	default:
		return jsonfile.Open(c.Storage.Path)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (overrides discovery)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "", "storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		addCmd,
		updateCmd,
		deleteCmd,
		listCmd,
		searchCmd,
		sortCmd,
		statsCmd,
		exportCmd,
		importCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
