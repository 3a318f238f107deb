// Package cli provides the glazed command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/glazed/internal/adapters/driven/config/file"
	"github.com/custodia-labs/glazed/internal/connectors/tiled"
	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driving"
	"github.com/custodia-labs/glazed/internal/core/services"
	"github.com/custodia-labs/glazed/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	configPath string
	verbose    bool
)

// Services used by the commands. They are built from the config file on
// first use; tests set them directly.
var (
	settings       *domain.Settings
	sessionService driving.SessionService
	assetService   driving.AssetService
)

var rootCmd = &cobra.Command{
	Use:   "glazed",
	Short: "Browse experiment runs stored in Tiled",
	Long: `glazed serves a GraphQL API over a Tiled data service, resolving
instrument sessions into runs, their array and table datasets, and
download links for the underlying files.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default ~/.glazed/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. ctx is cancelled on shutdown signals.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings reads and validates the config file once.
func loadSettings() (*domain.Settings, error) {
	if settings != nil {
		return settings, nil
	}

	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	loaded, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Debug("Loaded config from %s", store.Path())

	settings = &loaded
	return settings, nil
}

// ensureServices wires the Tiled client into the services unless they are
// already set.
func ensureServices() error {
	if sessionService != nil && assetService != nil {
		return nil
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	public, err := s.PublicURL()
	if err != nil {
		return err
	}

	client, err := tiled.NewClient(tiled.ConfigFromSettings(s.Tiled))
	if err != nil {
		return fmt.Errorf("tiled client: %w", err)
	}
	logger.Debug("Using Tiled at %s", client.BaseURL().Redacted())

	sessionService = services.NewSessionService(client, s.Resolution.MaxConcurrentStreams)
	assetService = services.NewAssetService(client, public)
	return nil
}
