package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jmalles/diffscope/internal/config"
	"github.com/jmalles/diffscope/internal/db"
	"github.com/jmalles/diffscope/internal/embeddings"
	"github.com/jmalles/diffscope/internal/logging"
	"github.com/jmalles/diffscope/internal/mcp/tools"
	"github.com/jmalles/diffscope/internal/review"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Database     *db.Database
}

func DefaultConfig() Config {
	database, err := db.NewDatabase(db.Config{DSN: config.PostgresURL(), Debug: config.DBDebug()})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	baseLogger := logging.ProductionLogger(config.LogLevel())
	embedClient, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.LLMCallTimeout(), baseLogger)
	if err != nil {
		log.Fatalf("failed to init embeddings client: %v", err)
	}

	repo := db.NewReviewRepository(database)
	searchService := tools.NewDBSearchService(repo, embedClient)
	detailsService := tools.NewDBDetailsService(repo)
	recentService := tools.NewDBRecentService(repo)

	defaultRepo := ""
	if raw := config.RepositoryURL(); raw != "" {
		ref, err := review.ParseRepoURL(raw)
		if err != nil {
			log.Printf("ignoring unparsable repository url: %v", err)
		} else {
			defaultRepo = ref.FullName()
		}
	}

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"search_reviews":      &tools.SearchReviewsHandler{Service: searchService},
			"get_review":          &tools.GetReviewHandler{Service: detailsService, DefaultRepo: defaultRepo},
			"analyze_patch":       tools.NewAnalyzePatchHandler(),
			"list_recent_reviews": &tools.ListRecentReviewsHandler{Service: recentService},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Database: database,
	}
}
