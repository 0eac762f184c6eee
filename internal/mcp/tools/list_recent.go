package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmalles/diffscope/internal/db"
	"github.com/jmalles/diffscope/internal/mcp/tools/types"
)

type RecentService interface {
	RecentReviews(ctx context.Context, limit int) ([]types.ReviewResult, error)
}

type ListRecentReviewsHandler struct {
	Service RecentService
}

type dbRecentService struct {
	repo *db.ReviewRepository
}

func NewDBRecentService(repo *db.ReviewRepository) RecentService {
	return &dbRecentService{repo: repo}
}

func (s *dbRecentService) RecentReviews(ctx context.Context, limit int) ([]types.ReviewResult, error) {
	recs, err := s.repo.RecentReviews(ctx, limit)
	if err != nil {
		return nil, err
	}
	results := make([]types.ReviewResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, db.ToReviewResult(*rec, nil))
	}
	return results, nil
}

func (h *ListRecentReviewsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	limit := 10
	if raw, ok := args["limit"].(float64); ok && raw > 0 {
		limit = int(raw)
	}
	results, err := h.Service.RecentReviews(ctx, limit)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultJSON(payload)
}
