package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/ppmfit/internal/config"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func rpc(t *testing.T, handle func(context.Context, json.RawMessage) any, msg string) string {
	t.Helper()
	out, err := json.Marshal(handle(context.Background(), json.RawMessage(msg)))
	require.NoError(t, err)
	return string(out)
}

func TestNew_RegistersEverything(t *testing.T) {
	s, cleanup, err := New(testConfig(t), nil)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup()

	handle := func(ctx context.Context, raw json.RawMessage) any { return s.HandleMessage(ctx, raw) }

	rpc(t, handle, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)

	toolList := rpc(t, handle, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	for _, name := range []string{
		"space_create", "space_list", "space_import", "space_status", "space_delete",
		"criterion_add", "criterion_set_weight",
		"tool_add", "tool_remove", "tool_rate",
		"decision_score", "decision_tradeoffs",
		"decision_transition", "decision_advance", "decision_back",
	} {
		assert.Contains(t, toolList, `"`+name+`"`)
	}

	promptList := rpc(t, handle, `{"jsonrpc":"2.0","id":3,"method":"prompts/list"}`)
	assert.Contains(t, promptList, "decision-start")
	assert.Contains(t, promptList, "decision-status")

	templates := rpc(t, handle, `{"jsonrpc":"2.0","id":4,"method":"resources/templates/list"}`)
	assert.Contains(t, templates, "ppmfit://spaces/{id}")
}

func TestNew_EndToEndDecision(t *testing.T) {
	s, cleanup, err := New(testConfig(t), nil)
	require.NoError(t, err)
	defer cleanup()

	handle := func(ctx context.Context, raw json.RawMessage) any { return s.HandleMessage(ctx, raw) }
	rpc(t, handle, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)

	out := rpc(t, handle, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"space_list","arguments":{}}}`)
	assert.Contains(t, out, "No decision spaces yet")
}

func TestNew_BadDataDir(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = "/dev/null/ppmfit"

	s, cleanup, err := New(cfg, nil)

	assert.Error(t, err)
	assert.Nil(t, s)
	assert.NotNil(t, cleanup)
}
