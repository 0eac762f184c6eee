package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmalles/diffscope/internal/mcp/tools/types"
)

type SearchService interface {
	SearchReviews(ctx context.Context, query string, limit int) ([]types.ReviewResult, error)
}

type SearchReviewsHandler struct {
	Service SearchService
}

func (h *SearchReviewsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	limit := 10
	if rawLimit, ok := args["limit"].(float64); ok {
		parsed := int(rawLimit)
		if parsed > 0 {
			limit = parsed
		}
	}
	results, err := h.Service.SearchReviews(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(results))), nil
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
