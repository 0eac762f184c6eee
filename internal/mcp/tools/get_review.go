package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmalles/diffscope/internal/db"
	"github.com/jmalles/diffscope/internal/mcp/tools/types"
)

type DetailsService interface {
	GetReview(ctx context.Context, repo string, prNumber int) (types.ReviewResult, error)
}

type GetReviewHandler struct {
	Service DetailsService
	// DefaultRepo fills the repo argument when the caller leaves it out.
	DefaultRepo string
}

type dbDetailsService struct {
	repo *db.ReviewRepository
}

func NewDBDetailsService(repo *db.ReviewRepository) DetailsService {
	return &dbDetailsService{repo: repo}
}

func (s *dbDetailsService) GetReview(ctx context.Context, repo string, prNumber int) (types.ReviewResult, error) {
	entity, err := s.repo.GetReview(ctx, repo, prNumber)
	if err != nil {
		return types.ReviewResult{}, err
	}
	if entity == nil {
		return types.ReviewResult{}, nil
	}
	return db.ToReviewResult(*entity, nil), nil
}

func (h *GetReviewHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	number, err := parseIntArgument(args["pr_number"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repo, _ := args["repo"].(string)
	if repo == "" {
		repo = h.DefaultRepo
	}
	if repo == "" {
		return mcp.NewToolResultError("repo parameter is required"), nil
	}
	result, err := h.Service.GetReview(ctx, repo, number)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultJSON(payload)
}

func parseIntArgument(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("pr_number must be positive")
		}
		return int(v), nil
	case int:
		if v <= 0 {
			return 0, fmt.Errorf("pr_number must be positive")
		}
		return v, nil
	default:
		return 0, fmt.Errorf("pr_number must be provided")
	}
}
