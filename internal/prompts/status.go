package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the decision-status MCP prompt.
// It instructs the AI to read and present where a decision stands.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("decision-status",
		mcp.WithPromptDescription(
			"Check where a tool decision stands: lifecycle state, the current leader, "+
				"confidence, and what to do next.",
		),
		mcp.WithArgument("space_id",
			mcp.ArgumentDescription("ID of the decision space. Leave empty to pick from the list."),
		),
	)
}

// Handle processes the decision-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	first := "Run `space_list` and ask me which decision I mean, then run `space_status` for it."
	if args := req.Params.Arguments; args != nil {
		if id := strings.TrimSpace(args["space_id"]); id != "" {
			first = fmt.Sprintf("Run `space_status` with space_id='%s'.", id)
		}
	}

	return &mcp.GetPromptResult{
		Description: "Decision Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					first + "\n\n" +
						"Then:\n" +
						"1. Show me the lifecycle state and what is still missing to move on\n" +
						"2. If there are at least two tools, run `decision_tradeoffs` and summarize the leader and confidence\n" +
						"3. Tell me exactly what I should do next",
				),
			},
		},
	}, nil
}
