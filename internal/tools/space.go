package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// --- space_create ---

// SpaceCreateTool handles the space_create MCP tool.
type SpaceCreateTool struct {
	repo spaces.Repository
}

// NewSpaceCreateTool creates a SpaceCreateTool.
func NewSpaceCreateTool(repo spaces.Repository) *SpaceCreateTool {
	return &SpaceCreateTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *SpaceCreateTool) Definition() mcp.Tool {
	return mcp.NewTool("space_create",
		mcp.WithDescription(
			"Start a new decision space for choosing a project portfolio management tool. "+
				"The space begins in the framing state. Optionally seed it with criteria names; "+
				"each starts at the default weight (3) and still needs to be rated.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Short name for the decision, e.g. 'PPM tool for the PMO'"),
		),
		mcp.WithString("description",
			mcp.Description("What the team is trying to decide and why"),
		),
		mcp.WithString("criteria",
			mcp.Description("Optional comma-separated criterion names, e.g. 'Cost, Ease of use, Reporting'"),
		),
	)
}

// Handle processes the space_create tool call.
func (t *SpaceCreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, errRes := requiredString(req, "name")
	if errRes != nil {
		return errRes, nil
	}

	sp := &spaces.Space{
		Name:        name,
		Description: strings.TrimSpace(req.GetString("description", "")),
	}
	for _, raw := range strings.Split(req.GetString("criteria", ""), ",") {
		cname := strings.TrimSpace(raw)
		if cname == "" {
			continue
		}
		sp.Criteria = append(sp.Criteria, scoring.NewCriterion(slugify(cname), cname))
	}

	if err := t.repo.Create(ctx, sp); err != nil {
		return repoError(err, "creating space")
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Decision Space Created\n\n"+
			"**ID:** `%s`\n"+
			"**Name:** %s\n"+
			"**Criteria:** %d\n\n"+
			"## Next Step\n\n"+
			"Agree on what matters. Add criteria with `criterion_add` and give each an "+
			"importance with `criterion_set_weight`. Rating one criterion unlocks evaluating.",
		sp.ID, sp.Name, len(sp.Criteria),
	)), nil
}

// --- space_list ---

// SpaceListTool handles the space_list MCP tool.
type SpaceListTool struct {
	repo spaces.Repository
}

// NewSpaceListTool creates a SpaceListTool.
func NewSpaceListTool(repo spaces.Repository) *SpaceListTool {
	return &SpaceListTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *SpaceListTool) Definition() mcp.Tool {
	return mcp.NewTool("space_list",
		mcp.WithDescription("List all decision spaces, most recently updated first."),
	)
}

// Handle processes the space_list tool call.
func (t *SpaceListTool) Handle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing spaces")
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No decision spaces yet. Create one with `space_create`."), nil
	}

	var sb strings.Builder
	sb.WriteString("# Decision Spaces\n\n")
	sb.WriteString("| ID | Name | State | Criteria | Tools | Updated |\n")
	sb.WriteString("|----|------|-------|----------|-------|---------|\n")
	for _, s := range list {
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %d | %d | %s |\n",
			s.ID, s.Name, s.State, s.Criteria, s.Tools, s.UpdatedAt)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- space_import ---

// SpaceImportTool handles the space_import MCP tool.
type SpaceImportTool struct {
	repo spaces.Repository
}

// NewSpaceImportTool creates a SpaceImportTool.
func NewSpaceImportTool(repo spaces.Repository) *SpaceImportTool {
	return &SpaceImportTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *SpaceImportTool) Definition() mcp.Tool {
	return mcp.NewTool("space_import",
		mcp.WithDescription(
			"Create a decision space from a YAML document with name, optional state, "+
				"criteria (id, name, optional weight 1-5) and tools (id, name, ratings map). "+
				"A criterion with a weight counts as rated.",
		),
		mcp.WithString("yaml",
			mcp.Required(),
			mcp.Description("The decision space as YAML"),
		),
	)
}

// Handle processes the space_import tool call.
func (t *SpaceImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, errRes := requiredString(req, "yaml")
	if errRes != nil {
		return errRes, nil
	}

	sp, err := spaces.ParseFile([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.repo.Create(ctx, sp); err != nil {
		return repoError(err, "importing space")
	}

	return mcp.NewToolResultText("# Decision Space Imported\n\n" + spaces.RenderStatus(sp)), nil
}

// --- space_status ---

// SpaceStatusTool handles the space_status MCP tool.
type SpaceStatusTool struct {
	repo spaces.Repository
}

// NewSpaceStatusTool creates a SpaceStatusTool.
func NewSpaceStatusTool(repo spaces.Repository) *SpaceStatusTool {
	return &SpaceStatusTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *SpaceStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("space_status",
		mcp.WithDescription(
			"Show a decision space: lifecycle state, criteria and weights, tools and ratings, "+
				"and what is still needed to move to the next state.",
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the decision space"),
		),
	)
}

// Handle processes the space_status tool call.
func (t *SpaceStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sp, errRes, err := loadSpace(ctx, t.repo, req)
	if sp == nil {
		return errRes, err
	}
	return mcp.NewToolResultText(spaces.RenderStatus(sp)), nil
}

// --- space_delete ---

// SpaceDeleteTool handles the space_delete MCP tool.
type SpaceDeleteTool struct {
	repo spaces.Repository
}

// NewSpaceDeleteTool creates a SpaceDeleteTool.
func NewSpaceDeleteTool(repo spaces.Repository) *SpaceDeleteTool {
	return &SpaceDeleteTool{repo: repo}
}

// Definition returns the MCP tool definition for registration.
func (t *SpaceDeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("space_delete",
		mcp.WithDescription("Permanently delete a decision space with its criteria, tools, ratings and history."),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("ID of the decision space"),
		),
	)
}

// Handle processes the space_delete tool call.
func (t *SpaceDeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errRes := requiredString(req, "space_id")
	if errRes != nil {
		return errRes, nil
	}
	if err := t.repo.Delete(ctx, id); err != nil {
		return repoError(err, "deleting space")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted decision space `%s`.", id)), nil
}
