package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// transitioner holds what every lifecycle tool shares: loading the space,
// rebuilding its machine with a recorder attached, and reporting.
type transitioner struct {
	repo         spaces.Repository
	bridge       TransitionObserver
	historyLimit int
}

func (tr *transitioner) run(
	ctx context.Context,
	req mcp.CallToolRequest,
	move func(m *lifecycle.Machine, trigger lifecycle.Trigger) lifecycle.TransitionResult,
) (*mcp.CallToolResult, error) {
	sp, errRes, err := loadSpace(ctx, tr.repo, req)
	if sp == nil {
		return errRes, err
	}
	trigger, errRes := triggerArg(req)
	if errRes != nil {
		return errRes, nil
	}

	rec := NewTransitionRecorder(ctx, tr.repo, sp.ID)
	m := sp.Machine(
		lifecycle.WithObserver(rec.Observe),
		lifecycle.WithHistoryLimit(tr.historyLimit),
	)
	from := m.State()

	res := move(m, trigger)
	if err := rec.Err(); err != nil {
		return nil, errors.Wrap(err, "saving transition")
	}
	for _, t := range rec.Recorded() {
		notifyObserver(tr.bridge, sp.ID, t)
	}

	if !res.Success {
		return mcp.NewToolResultError(describeFailure(res)), nil
	}

	def := lifecycle.States[res.NewState]
	var sb strings.Builder
	if res.NewState == from {
		fmt.Fprintf(&sb, "# Already %s\n\n", def.Label)
	} else {
		fmt.Fprintf(&sb, "# Moved to %s\n\n", def.Label)
		fmt.Fprintf(&sb, "**From:** %s → **To:** %s (%s)\n\n", from, res.NewState, trigger)
	}
	fmt.Fprintf(&sb, "%s\n", def.Description)
	if len(def.AllowedTransitions) > 0 {
		names := make([]string, len(def.AllowedTransitions))
		for i, s := range def.AllowedTransitions {
			names[i] = string(s)
		}
		fmt.Fprintf(&sb, "\n**Can move to:** %s\n", strings.Join(names, ", "))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func triggerArg(req mcp.CallToolRequest) (lifecycle.Trigger, *mcp.CallToolResult) {
	switch trig := lifecycle.Trigger(req.GetString("trigger", string(lifecycle.TriggerUser))); trig {
	case lifecycle.TriggerUser, lifecycle.TriggerAssistant, lifecycle.TriggerSystem:
		return trig, nil
	default:
		return "", mcp.NewToolResultError(fmt.Sprintf("unknown trigger %q: use user, assistant or system", trig))
	}
}

func describeFailure(res lifecycle.TransitionResult) string {
	var sb strings.Builder
	sb.WriteString(res.Error)
	if miss := res.MissingRequirements; miss != nil {
		sb.WriteString("\n\n## Still needed\n\n")
		if miss.CriteriaRated > 0 {
			fmt.Fprintf(&sb, "- Rate %d more criteria with `criterion_set_weight`\n", miss.CriteriaRated)
		}
		if miss.CandidatesNeeded > 0 {
			fmt.Fprintf(&sb, "- Add %d more tools with `tool_add`\n", miss.CandidatesNeeded)
		}
	}
	return sb.String()
}

func withTrigger() mcp.ToolOption {
	return mcp.WithString("trigger",
		mcp.Description("Who asked for the move"),
		mcp.Enum(string(lifecycle.TriggerUser), string(lifecycle.TriggerAssistant), string(lifecycle.TriggerSystem)),
		mcp.DefaultString(string(lifecycle.TriggerUser)),
	)
}

// --- decision_transition ---

// DecisionTransitionTool handles the decision_transition MCP tool.
type DecisionTransitionTool struct {
	transitioner
}

// NewDecisionTransitionTool creates a DecisionTransitionTool. historyLimit
// bounds the in-memory history of the rebuilt machine; 0 means unbounded.
func NewDecisionTransitionTool(repo spaces.Repository, historyLimit int) *DecisionTransitionTool {
	return &DecisionTransitionTool{transitioner{repo: repo, historyLimit: historyLimit}}
}

// SetBridge injects an optional TransitionObserver.
func (t *DecisionTransitionTool) SetBridge(obs TransitionObserver) { t.bridge = obs }

// Definition returns the MCP tool definition for registration.
func (t *DecisionTransitionTool) Definition() mcp.Tool {
	return mcp.NewTool("decision_transition",
		mcp.WithDescription(
			"Move a decision space to a specific lifecycle state: framing, evaluating or decided. "+
				"Evaluating needs at least one rated criterion; decided needs at least two tools. "+
				"Going back from decided to evaluating is always allowed.",
		),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Target state"),
			mcp.Enum(string(lifecycle.StateFraming), string(lifecycle.StateEvaluating), string(lifecycle.StateDecided)),
		),
		withTrigger(),
	)
}

// Handle processes the decision_transition tool call.
func (t *DecisionTransitionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, errRes := requiredString(req, "target")
	if errRes != nil {
		return errRes, nil
	}
	return t.run(ctx, req, func(m *lifecycle.Machine, trig lifecycle.Trigger) lifecycle.TransitionResult {
		return m.TransitionTo(lifecycle.State(target), trig)
	})
}

// --- decision_advance ---

// DecisionAdvanceTool handles the decision_advance MCP tool.
type DecisionAdvanceTool struct {
	transitioner
}

// NewDecisionAdvanceTool creates a DecisionAdvanceTool.
func NewDecisionAdvanceTool(repo spaces.Repository, historyLimit int) *DecisionAdvanceTool {
	return &DecisionAdvanceTool{transitioner{repo: repo, historyLimit: historyLimit}}
}

// SetBridge injects an optional TransitionObserver.
func (t *DecisionAdvanceTool) SetBridge(obs TransitionObserver) { t.bridge = obs }

// Definition returns the MCP tool definition for registration.
func (t *DecisionAdvanceTool) Definition() mcp.Tool {
	return mcp.NewTool("decision_advance",
		mcp.WithDescription("Move a decision space one step forward: framing → evaluating → decided."),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		withTrigger(),
	)
}

// Handle processes the decision_advance tool call.
func (t *DecisionAdvanceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.run(ctx, req, (*lifecycle.Machine).GoToNext)
}

// --- decision_back ---

// DecisionBackTool handles the decision_back MCP tool.
type DecisionBackTool struct {
	transitioner
}

// NewDecisionBackTool creates a DecisionBackTool.
func NewDecisionBackTool(repo spaces.Repository, historyLimit int) *DecisionBackTool {
	return &DecisionBackTool{transitioner{repo: repo, historyLimit: historyLimit}}
}

// SetBridge injects an optional TransitionObserver.
func (t *DecisionBackTool) SetBridge(obs TransitionObserver) { t.bridge = obs }

// Definition returns the MCP tool definition for registration.
func (t *DecisionBackTool) Definition() mcp.Tool {
	return mcp.NewTool("decision_back",
		mcp.WithDescription("Move a decision space one step back, e.g. to reopen a decision."),
		mcp.WithString("space_id", mcp.Required(), mcp.Description("ID of the decision space")),
		withTrigger(),
	)
}

// Handle processes the decision_back tool call.
func (t *DecisionBackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.run(ctx, req, (*lifecycle.Machine).GoToPrevious)
}
