package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmalles/diffscope/internal/db"
	"github.com/jmalles/diffscope/internal/embeddings"
	"github.com/jmalles/diffscope/internal/mcp/tools/types"
)

type DBSearchService struct {
	Repository  *db.ReviewRepository
	EmbedClient *embeddings.Client
}

func NewDBSearchService(repo *db.ReviewRepository, embed *embeddings.Client) *DBSearchService {
	return &DBSearchService{Repository: repo, EmbedClient: embed}
}

func (s *DBSearchService) SearchReviews(ctx context.Context, query string, limit int) ([]types.ReviewResult, error) {
	if strings.TrimSpace(query) == "" {
		return []types.ReviewResult{}, nil
	}

	vectors, err := s.EmbedClient.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return []types.ReviewResult{}, nil
	}

	rows, err := s.Repository.SearchReviews(ctx, vectors[0], limit)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}

	results := make([]types.ReviewResult, 0, len(rows))
	for _, row := range rows {
		similarity := 1 - (row.Distance / 2.0)
		results = append(results, db.ToReviewResult(row.ReviewRecord, &similarity))
	}
	return results, nil
}
