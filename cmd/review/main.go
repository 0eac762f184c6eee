package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmalles/diffscope/internal/config"
	"github.com/jmalles/diffscope/internal/db"
	dbmigrate "github.com/jmalles/diffscope/internal/db/migrate"
	"github.com/jmalles/diffscope/internal/diff"
	"github.com/jmalles/diffscope/internal/embeddings"
	"github.com/jmalles/diffscope/internal/logging"
	"github.com/jmalles/diffscope/internal/review"
)

var rootCmd = &cobra.Command{
	Use:   "review",
	Short: "Review pull requests and classify patches",
}

var prCmd = &cobra.Command{
	Use:   "pr <number>",
	Short: "Review one pull request end to end",
	Args:  cobra.ExactArgs(1),
	RunE:  runPR,
}

var patchCmd = &cobra.Command{
	Use:   "patch [file]",
	Short: "Classify a unified diff without calling a model",
	Long:  "Classify a unified diff: line numbers of added and removed lines, language, test-file flag, and matched function, import, and test declarations. Reads the file argument or stdin.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPatch,
}

func main() {
	config.Init(rootCmd)

	prCmd.Flags().Bool("post", false, "Post the finished review as a PR comment")
	prCmd.Flags().Bool("json", false, "Print the full review record as JSON")
	rootCmd.AddCommand(prCmd, patchCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("review: %v", err)
	}
}

func runPR(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil || number <= 0 {
		return fmt.Errorf("invalid pull request number %q", args[0])
	}
	post, _ := cmd.Flags().GetBool("post")
	asJSON, _ := cmd.Flags().GetBool("json")

	logger := logging.ProductionLogger(config.LogLevel())

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

	// An explicit CLI run reviews regardless of the daemon toggle; posting
	// stays opt-in behind --post.
	reviewer, err := review.NewReviewer(review.Config{
		Enabled:          true,
		ModelName:        config.ReviewModel(),
		OllamaURL:        config.OllamaURL(),
		MaxContextTokens: config.ReviewContextTokens(),
		CallTimeout:      config.LLMCallTimeout(),
		MaxFiles:         config.MaxReviewFiles(),
		PostComments:     post,
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

	result, err := service.ProcessPR(cmd.Context(), number, true)
	if err != nil {
		return err
	}

	if asJSON {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return nil
	}

	if !result.Succeeded {
		return fmt.Errorf("review failed (%s): %s", result.FailureCategory, result.FailureReason)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Body)
	if result.CommentURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nPosted: %s\n", result.CommentURL)
	}
	return nil
}

func runPatch(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	result, err := diff.NewAnalyzer().Analyze(string(raw))
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	return nil
}
