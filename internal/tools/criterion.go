package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// CriterionAddTool handles the criterion_add MCP tool.
type CriterionAddTool struct {
	repo spaces.Repository
}

// NewCriterionAddTool creates a CriterionAddTool.
func NewCriterionAddTool(repo spaces.Repository) *CriterionAddTool {
	return &CriterionAddTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *CriterionAddTool) Definition() mcp.Tool {
	return mcp.NewTool("criterion_add",
		mcp.WithDescription(
			"Add an evaluation criterion to a decision space. Without a weight the criterion "+
				"starts at the default importance (3) and does not count as rated yet.",
		),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name, e.g. 'Resource management'")),
		mcp.WithString("id", mcp.Description("Stable ID. Defaults to a slug of the name.")),
		mcp.WithString("description", mcp.Description("What this criterion covers")),
		mcp.WithNumber("weight",
			mcp.Description("Importance from 1 (nice to have) to 5 (critical)"),
			mcp.Min(scoring.MinRating),
			mcp.Max(scoring.MaxRating),
		),
	)
}

// Handle processes the criterion_add tool call.
func (t *CriterionAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID, errRes := requiredString(req, "space_id")
	if errRes != nil {
		return errRes, nil
	}
	name, errRes := requiredString(req, "name")
	if errRes != nil {
		return errRes, nil
	}
	weight, hasWeight, err := optionalInt(req, "weight")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c := scoring.NewCriterion(idOrSlug(req, name), name)
	c.Description = strings.TrimSpace(req.GetString("description", ""))
	if hasWeight {
		c.SetWeight(weight)
	}
	if c.ID == "" {
		return mcp.NewToolResultError("could not derive an id from the name; pass 'id' explicitly"), nil
	}

	if err := t.repo.AddCriterion(ctx, spaceID, c); err != nil {
		return repoError(err, "adding criterion")
	}

	rated := "not rated yet; set a weight with `criterion_set_weight`"
	if c.Touched {
		rated = "rated"
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Added criterion **%s** (`%s`) with weight %d, %s.",
		c.Name, c.ID, c.UserRating, rated,
	)), nil
}

// CriterionSetWeightTool handles the criterion_set_weight MCP tool.
type CriterionSetWeightTool struct {
	repo spaces.Repository
}

// NewCriterionSetWeightTool creates a CriterionSetWeightTool.
func NewCriterionSetWeightTool(repo spaces.Repository) *CriterionSetWeightTool {
	return &CriterionSetWeightTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *CriterionSetWeightTool) Definition() mcp.Tool {
	return mcp.NewTool("criterion_set_weight",
		mcp.WithDescription(
			"Set how important a criterion is, from 1 to 5. Any explicit weight, including 3, "+
				"marks the criterion as rated.",
		),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("criterion_id", mcp.Required(), mcp.Description("ID of the criterion")),
		mcp.WithNumber("weight",
			mcp.Required(),
			mcp.Description("Importance from 1 (nice to have) to 5 (critical)"),
			mcp.Min(scoring.MinRating),
			mcp.Max(scoring.MaxRating),
		),
	)
}

// Handle processes the criterion_set_weight tool call.
func (t *CriterionSetWeightTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID, errRes := requiredString(req, "space_id")
	if errRes != nil {
		return errRes, nil
	}
	criterionID, errRes := requiredString(req, "criterion_id")
	if errRes != nil {
		return errRes, nil
	}
	weight, ok, err := optionalInt(req, "weight")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("'weight' is required"), nil
	}

	if err := t.repo.SetWeight(ctx, spaceID, criterionID, weight); err != nil {
		return repoError(err, "setting weight")
	}

	sp, err := t.repo.Get(ctx, spaceID)
	if err != nil {
		return repoError(err, "reloading space")
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Set `%s` to weight %d.\n\n%s",
		criterionID, weight, progressSummary(sp),
	)), nil
}
