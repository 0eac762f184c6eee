package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jmalles/diffscope/internal/diff"
)

// AnalyzePatchHandler classifies a unified diff supplied by the caller. No
// database or model call is involved; the tool is pure computation.
type AnalyzePatchHandler struct {
	Engine *diff.Analyzer
}

func NewAnalyzePatchHandler() *AnalyzePatchHandler {
	return &AnalyzePatchHandler{Engine: diff.NewAnalyzer()}
}

func (h *AnalyzePatchHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	patch, _ := req.GetArguments()["patch"].(string)
	result, err := h.Engine.Analyze(patch)
	if err != nil {
		if errors.Is(err, diff.ErrEmptyPatch) {
			return mcp.NewToolResultError("patch parameter is required"), nil
		}
		return nil, err
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultJSON(payload)
}
