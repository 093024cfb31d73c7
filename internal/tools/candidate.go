package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// ToolAddTool handles the tool_add MCP tool: adding a candidate PPM tool
// to a decision space.
type ToolAddTool struct {
	repo spaces.Repository
}

// NewToolAddTool creates a ToolAddTool.
func NewToolAddTool(repo spaces.Repository) *ToolAddTool {
	return &ToolAddTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *ToolAddTool) Definition() mcp.Tool {
	return mcp.NewTool("tool_add",
		mcp.WithDescription(
			"Add a candidate tool to a decision space, optionally with ratings. "+
				"Criteria without a rating score as 3 until rated.",
		),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Product name, e.g. 'Smartsheet'")),
		mcp.WithString("id", mcp.Description("Stable ID. Defaults to a slug of the name.")),
		mcp.WithString("description", mcp.Description("Short note on the tool")),
		mcp.WithObject("ratings",
			mcp.Description("Ratings 1-5 keyed by criterion ID, e.g. {\"cost\": 4, \"reporting\": 2}"),
		),
	)
}

// Handle processes the tool_add tool call.
func (t *ToolAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID, errRes := requiredString(req, "space_id")
	if errRes != nil {
		return errRes, nil
	}
	name, errRes := requiredString(req, "name")
	if errRes != nil {
		return errRes, nil
	}
	ratings, err := intMapArg(req, "ratings")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tool := scoring.Tool{
		ID:          idOrSlug(req, name),
		Name:        name,
		Description: strings.TrimSpace(req.GetString("description", "")),
		Ratings:     ratings,
	}
	if tool.ID == "" {
		return mcp.NewToolResultError("could not derive an id from the name; pass 'id' explicitly"), nil
	}

	if err := t.repo.AddTool(ctx, spaceID, tool); err != nil {
		return repoError(err, "adding tool")
	}

	sp, err := t.repo.Get(ctx, spaceID)
	if err != nil {
		return repoError(err, "reloading space")
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Added **%s** (`%s`) with %d ratings.\n\n%s",
		tool.Name, tool.ID, len(ratings), progressSummary(sp),
	)), nil
}

// ToolRemoveTool handles the tool_remove MCP tool.
type ToolRemoveTool struct {
	repo spaces.Repository
}

// NewToolRemoveTool creates a ToolRemoveTool.
func NewToolRemoveTool(repo spaces.Repository) *ToolRemoveTool {
	return &ToolRemoveTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *ToolRemoveTool) Definition() mcp.Tool {
	return mcp.NewTool("tool_remove",
		mcp.WithDescription("Remove a candidate tool and its ratings from a decision space."),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("tool_id", mcp.Required(), mcp.Description("ID of the tool to remove")),
	)
}

// Handle processes the tool_remove tool call.
func (t *ToolRemoveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID, errRes := requiredString(req, "space_id")
	if errRes != nil {
		return errRes, nil
	}
	toolID, errRes := requiredString(req, "tool_id")
	if errRes != nil {
		return errRes, nil
	}

	if err := t.repo.RemoveTool(ctx, spaceID, toolID); err != nil {
		return repoError(err, "removing tool")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed tool `%s`.", toolID)), nil
}

// ToolRateTool handles the tool_rate MCP tool.
type ToolRateTool struct {
	repo spaces.Repository
}

// NewToolRateTool creates a ToolRateTool.
func NewToolRateTool(repo spaces.Repository) *ToolRateTool {
	return &ToolRateTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *ToolRateTool) Definition() mcp.Tool {
	return mcp.NewTool("tool_rate",
		mcp.WithDescription("Rate how well a tool does on one criterion, from 1 (poor) to 5 (excellent)."),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("tool_id", mcp.Required(), mcp.Description("ID of the tool")),
		mcp.WithString("criterion_id", mcp.Required(), mcp.Description("ID of the criterion")),
		mcp.WithNumber("score",
			mcp.Required(),
			mcp.Description("Rating from 1 to 5"),
			mcp.Min(scoring.MinRating),
			mcp.Max(scoring.MaxRating),
		),
	)
}

// Handle processes the tool_rate tool call.
func (t *ToolRateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID, errRes := requiredString(req, "space_id")
	if errRes != nil {
		return errRes, nil
	}
	toolID, errRes := requiredString(req, "tool_id")
	if errRes != nil {
		return errRes, nil
	}
	criterionID, errRes := requiredString(req, "criterion_id")
	if errRes != nil {
		return errRes, nil
	}
	score, ok, err := optionalInt(req, "score")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("'score' is required"), nil
	}

	if err := t.repo.SetRating(ctx, spaceID, toolID, criterionID, score); err != nil {
		return repoError(err, "rating tool")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Rated `%s` %d/5 on `%s`.", toolID, score, criterionID)), nil
}
