// Command academy is the EHPAD Academy terminal client: themed quizzes,
// budget simulation, the activity-sheet library and the gamified profile,
// backed by the remote Academy API.
//
// Run without arguments to start the interactive interface. Every
// operation is also exposed as a subcommand for scripting.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ehpadacademy/cmd/academy/ui"
	"ehpadacademy/internal/auth"
	"ehpadacademy/internal/config"
	"ehpadacademy/internal/logging"
	"ehpadacademy/internal/session"
)

var (
	// Global flags
	cfgPath string
	apiURL  string
	verbose bool

	logger *zap.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "academy",
	Short: "EHPAD Academy - formation gamifiée pour le personnel d'EHPAD",
	Long: `EHPAD Academy is the terminal client for the Academy training
platform: themed quizzes with XP and badges, a budget simulation, and a
shared library of facilitation activity sheets.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.Options{Verbose: verbose})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := cfgPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		return ui.Run(store, logger)
	},
}

// newStore builds the session store from the loaded configuration. The
// session is not restored; interactive mode does that itself and the
// subcommands call initStore.
func newStore() (*session.Store, error) {
	tokens, err := auth.NewTokenStore(cfg.Auth.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return session.New(session.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  tokens,
		Logger:  logger,
	}), nil
}

// initStore builds the store and restores the persisted session, for the
// non-interactive subcommands.
func initStore(ctx context.Context) (*session.Store, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "configuration file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides configuration)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(listenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
