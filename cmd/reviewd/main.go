package main

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmalles/diffscope/internal/config"
	"github.com/jmalles/diffscope/internal/db"
	dbmigrate "github.com/jmalles/diffscope/internal/db/migrate"
	"github.com/jmalles/diffscope/internal/embeddings"
	"github.com/jmalles/diffscope/internal/logging"
	"github.com/jmalles/diffscope/internal/review"
	"github.com/jmalles/diffscope/internal/webhook"
)

func main() {
	root := &cobra.Command{
		Use:   "reviewd",
		Short: "Pull request review webhook daemon",
		RunE:  run,
	}

	root.PersistentFlags().String("listen-addr", "", "HTTP listen address (host:port)")
	root.PersistentFlags().String("repository-url", "", "GitHub repository to review (URL or owner/name)")
	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("reviewd: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.ProductionLogger(config.LogLevel())
	logg := logging.New(logger).WithName("reviewd")

	database, err := db.NewDatabase(db.Config{DSN: config.PostgresURL(), Debug: config.DBDebug()})
	if err != nil {
		return err
	}
	defer database.Close()

	if err := dbmigrate.EnsureCurrent(cmd.Context(), database.Bun(), "", config.AutoMigrate()); err != nil {
		return err
	}

	ref, err := review.ParseRepoURL(config.RepositoryURL())
	if err != nil {
		return err
	}
	fetcher := review.NewGitHubFetcher(review.NewGitHubClient(config.GitHubToken()), ref)

	reviewer, err := review.NewReviewer(review.Config{
		Enabled:          config.ReviewEnabled(),
		ModelName:        config.ReviewModel(),
		OllamaURL:        config.OllamaURL(),
		MaxContextTokens: config.ReviewContextTokens(),
		CallTimeout:      config.LLMCallTimeout(),
		MaxFiles:         config.MaxReviewFiles(),
		PostComments:     config.PostComments(),
		PolicyFile:       config.PolicyFile(),
		Logger:           logger,
	}, fetcher)
	if err != nil {
		return err
	}

	embedClient, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.LLMCallTimeout(), logger)
	if err != nil {
		return err
	}

	service := review.NewService(reviewer, fetcher, db.NewReviewRepository(database), embedClient)

	server := webhook.NewServer(webhook.Config{
		Addr:       config.ListenAddr(),
		Secret:     config.WebhookSecret(),
		Repository: ref.FullName(),
		Logger:     logger,
	}, service, database)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logg.Info("starting", "repo", ref.FullName(), "addr", config.ListenAddr())
	return server.Start(ctx)
}
