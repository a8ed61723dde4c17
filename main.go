package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/kulshreya03/NewsAggregatorAws/internal/aggregator"
	"github.com/kulshreya03/NewsAggregatorAws/internal/config"
	"github.com/kulshreya03/NewsAggregatorAws/internal/logger"
	"github.com/kulshreya03/NewsAggregatorAws/internal/models"
	"github.com/kulshreya03/NewsAggregatorAws/internal/sources"
	"github.com/kulshreya03/NewsAggregatorAws/internal/storage"
)

var decodeID bool

var rootCmd = &cobra.Command{
	Use:           "newsproxy",
	Short:         "HTTP proxy for newsapi.org with optional article persistence",
	Long:          `Serves /all-news, /country/:iso and /top-headlines. All settings come from the environment (or a .env file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var articleIDCmd = &cobra.Command{
	Use:   "article-id <url|id>",
	Short: "Print the storage key for an article URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if decodeID {
			url, err := models.DecodeArticleID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), models.ArticleID(args[0]))
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Postgres articles table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if cfg.StoreBackend != config.BackendPostgres || cfg.PostgresDSN == "" {
			return fmt.Errorf("migrate needs STORE_BACKEND=postgres and DATABASE_URL")
		}

		store, err := storage.OpenPostgres(cmd.Context(), cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Migrate(cmd.Context())
	},
}

func init() {
	articleIDCmd.Flags().BoolVar(&decodeID, "decode", false, "Decode a storage key back into its URL")

	rootCmd.AddCommand(serveCmd, articleIDCmd, migrateCmd)
}

func serve(ctx context.Context) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	var persister *storage.Persister
	if cfg.PersistenceEnabled {
		store, closeStore, err := storage.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
		}
		defer closeStore()

		persister = storage.NewPersister(store, log.With("store", cfg.StoreBackend))
	}

	source := sources.NewNewsAPIClient(cfg.NewsAPIKey, cfg.NewsAPIBaseURL, cfg.UpstreamTimeout)
	newsAggregator := aggregator.New(cfg, source, persister, log)

	log.Info("Starting news proxy...")
	if err := newsAggregator.Run(ctx); err != nil {
		return err
	}
	log.Info("News proxy stopped gracefully")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
