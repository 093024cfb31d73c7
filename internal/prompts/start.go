// Package prompts implements MCP prompt handlers for decision spaces.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the decision-start MCP prompt.
// It guides the AI through framing a new tool-selection decision.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("decision-start",
		mcp.WithPromptDescription(
			"Start choosing a project portfolio management tool. "+
				"The assistant helps you decide what matters, compare candidates, "+
				"and talk through the tradeoffs before you commit.",
		),
		mcp.WithArgument("decision_name",
			mcp.ArgumentDescription("Name of the decision, e.g. 'PPM tool for the PMO'"),
		),
		mcp.WithArgument("candidates",
			mcp.ArgumentDescription("Optional comma-separated tools you are already considering"),
		),
	)
}

// Handle processes the decision-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := "PPM tool selection"
	candidates := ""
	if args := req.Params.Arguments; args != nil {
		if v := strings.TrimSpace(args["decision_name"]); v != "" {
			name = v
		}
		candidates = strings.TrimSpace(args["candidates"])
	}

	candidateStep := "4. Ask me which tools I'm considering and add each with `tool_add`"
	if candidates != "" {
		candidateStep = fmt.Sprintf("4. Add these candidates with `tool_add`: %s", candidates)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start decision: %s", name),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I need to choose a project portfolio management tool. Let's call this decision '%s'.\n\n"+
						"Please:\n"+
						"1. Run `space_create` with name='%s'\n"+
						"2. Ask me what matters to my team and add each answer with `criterion_add`\n"+
						"3. Ask how important each criterion is (1-5) and record it with `criterion_set_weight`\n"+
						"%s\n"+
						"5. Rate each tool on each criterion with `tool_rate`, asking me when unsure\n"+
						"6. Move to evaluating with `decision_advance`, then use `decision_tradeoffs` to talk me through the choice\n\n"+
						"Don't just report the winner. Explain what I give up with it and what would change the answer.",
					name, name, candidateStep,
				)),
			},
		},
	}, nil
}
