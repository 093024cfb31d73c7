// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/ppmfit/internal/config"
	"github.com/HendryAvila/ppmfit/internal/prompts"
	"github.com/HendryAvila/ppmfit/internal/resources"
	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
	"github.com/HendryAvila/ppmfit/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// toolHandler is what every tool in internal/tools exposes.
type toolHandler interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the decision-space database and
// must be called on shutdown (typically via defer). It is always non-nil.
func New(cfg config.Config, logger *slog.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	// --- Create shared dependencies ---

	store, err := spaces.Open(cfg.DBPath())
	if err != nil {
		return nil, noop, errors.Wrap(err, "opening decision spaces")
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing decision spaces", "err", err)
		}
	}

	engine := scoring.NewEngine(cfg.CacheSize, cfg.CacheTTL)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"ppmfit",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register decision-space tools ---

	register(s,
		tools.NewSpaceCreateTool(store),
		tools.NewSpaceListTool(store),
		tools.NewSpaceImportTool(store),
		tools.NewSpaceStatusTool(store),
		tools.NewSpaceDeleteTool(store),
		tools.NewCriterionAddTool(store),
		tools.NewCriterionSetWeightTool(store),
		tools.NewToolAddTool(store),
		tools.NewToolRemoveTool(store),
		tools.NewToolRateTool(store),
		tools.NewDecisionScoreTool(store, engine),
		tools.NewDecisionTradeoffsTool(store, engine, cfg.TopTradeoffs),
	)

	// --- Register lifecycle tools ---
	//
	// Each transition is persisted by a TransitionRecorder inside the tool;
	// the bridge only reports what was saved.

	transitionTool := tools.NewDecisionTransitionTool(store, cfg.HistoryLimit)
	advanceTool := tools.NewDecisionAdvanceTool(store, cfg.HistoryLimit)
	backTool := tools.NewDecisionBackTool(store, cfg.HistoryLimit)

	bridge := tools.NewLogBridge(logger)
	transitionTool.SetBridge(bridge)
	advanceTool.SetBridge(bridge)
	backTool.SetBridge(bridge)

	register(s, transitionTool, advanceTool, backTool)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.ListResource(), resourceHandler.HandleList)
	s.AddResourceTemplate(resourceHandler.SpaceTemplate(), resourceHandler.HandleSpace)

	logger.Debug("server ready", "db", cfg.DBPath(), "cache_size", cfg.CacheSize)
	return s, cleanup, nil
}

func register(s *server.MCPServer, handlers ...toolHandler) {
	for _, h := range handlers {
		s.AddTool(h.Definition(), h.Handle)
	}
}

func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use ppmfit effectively.
func serverInstructions() string {
	return `You have access to ppmfit, a decision assistant for choosing a
project portfolio management (PPM) tool.

## WHEN TO ACTIVATE ppmfit

Suggest ppmfit when the user is comparing PPM, project management or
work management products, or asks "which tool should we pick?".

## CRITICAL: How Tools Work
ppmfit tools STORE and SCORE. They never invent criteria, weights or
ratings. Ask the user, then record their answers:

1. TALK to the user about what matters to their team
2. RECORD criteria (criterion_add) and their importance (criterion_set_weight)
3. RECORD candidates (tool_add) and ratings (tool_rate)
4. SCORE (decision_score) and EXPLAIN (decision_tradeoffs)

## Lifecycle
Every decision space moves through three states:
1. FRAMING: decide what matters. Needs at least one criterion with an
   explicit weight before moving on.
2. EVALUATING: compare tools. Needs at least two tools before deciding.
3. DECIDED: a tool has been chosen. The user can always reopen it.

Use decision_advance and decision_back for single steps, or
decision_transition for a specific state. If a move is refused, the
response says exactly what is missing; help the user supply it.

## Scores
- Match scores run 0-100. A criterion's weight (1-5) sets how much its
  rating (1-5) counts. Unrated tools score 3 on that criterion.
- Confidence (0-100) reflects how clear the lead is and how many
  criteria the leader loses on. Below 60 means the call is close: say so.
- Always mention what the leader gives up, and which criteria would flip
  the result if they mattered more.`
}
