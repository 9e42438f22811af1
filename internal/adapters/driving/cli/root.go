package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/config/file"
	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/storage/sqlite"
	"github.com/smohring/contao-cearch-pro/internal/adapters/driven/translit"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driven"
	"github.com/smohring/contao-cearch-pro/internal/core/ports/driving"
	"github.com/smohring/contao-cearch-pro/internal/core/services"
	"github.com/smohring/contao-cearch-pro/internal/logger"
	"github.com/smohring/contao-cearch-pro/internal/tokenize"
	"github.com/smohring/contao-cearch-pro/internal/transforms"
)

var version = "dev"

var (
	flagVerbose   bool
	flagConfigDir string
)

// Wired in initServices; commands guard against nil for tests.
var (
	configStore  driven.ConfigStore
	indexStore   *sqlite.Store
	indexService driving.Indexer
	searchSvc    driving.Searcher
)

var rootCmd = &cobra.Command{
	Use:   "cearch",
	Short: "Full-text search index for rendered pages",
	Long: `cearch maintains a full-text search index over rendered HTML pages.
Pages are fed in as markup, reduced to their indexable content and stored
in a local SQLite index that supports boolean, phrase, wildcard and
approximate queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if indexStore != nil {
			return indexStore.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.cearch)")
}

// initServices wires the adapters and core services. It is idempotent so
// tests can pre-seat fakes before Execute runs.
func initServices() error {
	if indexService != nil && searchSvc != nil {
		return nil
	}

	cfg, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = cfg

	if !flagVerbose && cfg.GetBool(file.KeyVerbose) {
		logger.SetVerbose(true)
	}

	store, err := sqlite.NewStore(cfg.GetString(file.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}
	indexStore = store

	languages := cfg.GetStringSlice(file.KeyLanguages)
	tokenizer := tokenize.New(tokenize.NewStopwordSet(languages...))
	tr := translit.New(translit.DefaultCacheSize)

	registry := transforms.NewRegistry()
	transforms.RegisterDefaults(registry)
	names := cfg.GetStringSlice(file.KeyTransforms)
	if len(names) == 0 {
		names = transforms.DefaultNames
	}
	pipeline, err := registry.Build(names)
	if err != nil {
		return fmt.Errorf("building transform pipeline: %w", err)
	}

	indexService = services.NewIndexer(store, tr, tokenizer, pipeline...)
	searchSvc = services.NewSearcher(store, tr)
	return nil
}

// Execute runs the root command.
func Execute(v string) {
	if v != "" {
		version = v
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
