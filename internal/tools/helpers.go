// Package tools implements the MCP tool handlers for decision spaces.
//
// Each tool is a struct that receives its dependencies through the
// constructor and exposes Definition and Handle for mcp-go registration.
//
// Design principles:
// - SRP: each file = one concern (spaces, criteria, candidates, scoring, lifecycle)
// - DIP: tools depend on interfaces (spaces.Repository, Analyzer), not concretions
// - User mistakes come back as tool errors; infrastructure failures as Go errors
package tools

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/ppmfit/internal/scoring"
	"github.com/HendryAvila/ppmfit/internal/spaces"
)

// Analyzer produces the full scoring analysis. *scoring.Engine implements it.
type Analyzer interface {
	Analyze(tools []scoring.Tool, criteria []scoring.Criterion, topN int) scoring.Analysis
}

// analyzerFunc adapts the pure scoring.Analyze for callers without a cache.
type analyzerFunc func([]scoring.Tool, []scoring.Criterion, int) scoring.Analysis

func (f analyzerFunc) Analyze(tools []scoring.Tool, criteria []scoring.Criterion, topN int) scoring.Analysis {
	return f(tools, criteria, topN)
}

// PureAnalyzer runs every analysis from scratch.
var PureAnalyzer Analyzer = analyzerFunc(scoring.Analyze)

// loadSpace fetches the space named by the space_id argument. A missing
// argument or unknown space is reported as a tool error.
func loadSpace(ctx context.Context, repo spaces.Repository, req mcp.CallToolRequest) (*spaces.Space, *mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("space_id", ""))
	if id == "" {
		return nil, mcp.NewToolResultError("'space_id' is required. Use `space_list` to find it."), nil
	}
	sp, err := repo.Get(ctx, id)
	if err != nil {
		res, err := repoError(err, "loading space")
		return nil, res, err
	}
	return sp, nil, nil
}

// repoError turns a repository failure into the right kind of result:
// caller mistakes become tool errors, everything else is returned as an
// error for the server to report.
func repoError(err error, action string) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, spaces.ErrNotFound),
		errors.Is(err, spaces.ErrInvalidInput),
		errors.Is(err, spaces.ErrConflict):
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err)), nil
	default:
		return nil, errors.Wrap(err, action)
	}
}

// requiredString reads a trimmed string argument, returning a tool error
// result when it is empty.
func requiredString(req mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	v := strings.TrimSpace(req.GetString(key, ""))
	if v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("'%s' is required", key))
	}
	return v, nil
}

// intMapArg reads an object argument of whole numbers, such as
// {"cost": 4, "ux": 2}. A missing argument yields an empty map.
func intMapArg(req mcp.CallToolRequest, key string) (map[string]int, error) {
	out := map[string]int{}
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return out, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Newf("'%s' must be an object of criterion id to rating", key)
	}
	for k, v := range obj {
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return nil, errors.Newf("'%s.%s' must be a whole number", key, k)
		}
		out[k] = int(n)
	}
	return out, nil
}

// slugify derives a stable ID from a display name: "Ease of Use" → "ease-of-use".
func slugify(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// idOrSlug returns the explicit id argument, or a slug of name.
func idOrSlug(req mcp.CallToolRequest, name string) string {
	if id := strings.TrimSpace(req.GetString("id", "")); id != "" {
		return id
	}
	return slugify(name)
}

// progressSummary renders the requirement counters for a space.
func progressSummary(sp *spaces.Space) string {
	p := sp.Progress()
	return fmt.Sprintf("**State:** %s | **Criteria rated:** %d/%d | **Tools:** %d",
		sp.State, p.CriteriaRated, len(sp.Criteria), p.Candidates)
}

// optionalInt reads a whole-number argument and reports whether it was given.
func optionalInt(req mcp.CallToolRequest, key string) (int, bool, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	n, ok := raw.(float64)
	if !ok || n != math.Trunc(n) {
		return 0, false, errors.Newf("'%s' must be a whole number", key)
	}
	return int(n), true, nil
}
