package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/ppmfit/internal/config"
	"github.com/HendryAvila/ppmfit/internal/scoring"
)

const decisionFile = `
name: PPM selection
criteria:
  - {id: c1, name: Criterion c1, weight: 5}
  - {id: c2, name: Criterion c2, weight: 1}
  - {id: c3, name: Criterion c3, weight: 1}
tools:
  - {id: a, name: Tool A, ratings: {c1: 5, c2: 1, c3: 1}}
  - {id: b, name: Tool B, ratings: {c1: 1, c2: 5, c3: 5}}
`

// runCmd executes the root command with an isolated config and data dir.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvLogLevel, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, config.FileName)}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDecision(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "space.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ppmfit vdev\n", out)
}

func TestScoreCommand_Table(t *testing.T) {
	out, _, err := runCmd(t, "score", writeDecision(t, decisionFile))
	require.NoError(t, err)

	assert.Contains(t, out, "RANK  TOOL    SCORE")
	assert.Contains(t, out, "1     Tool A  77")
	assert.Contains(t, out, "2     Tool B  43")
	assert.Contains(t, out, "Confidence: 80/100")
}

func TestScoreCommand_JSON(t *testing.T) {
	out, _, err := runCmd(t, "score", "--format", "json", writeDecision(t, decisionFile))
	require.NoError(t, err)

	var ranked []scoring.RankedTool
	require.NoError(t, json.Unmarshal([]byte(out), &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Tool.ID)
	assert.Equal(t, 77, ranked[0].Score.Total)
}

func TestScoreCommand_Errors(t *testing.T) {
	_, _, err := runCmd(t, "score", "--format", "xml", writeDecision(t, decisionFile))
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = runCmd(t, "score", writeDecision(t, "name: x\ncriteria:\n  - {id: c, name: C, weight: 8}\n"))
	assert.Error(t, err)

	_, _, err = runCmd(t, "score")
	assert.Error(t, err)
}

func TestScoreCommand_NoTools(t *testing.T) {
	out, _, err := runCmd(t, "score", writeDecision(t, "name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, "No tools to score.\n", out)
}

func TestTradeoffsCommand(t *testing.T) {
	out, _, err := runCmd(t, "tradeoffs", writeDecision(t, decisionFile))
	require.NoError(t, err)

	assert.Contains(t, out, "**Leader:** Tool A (77)")
	assert.Contains(t, out, "## Key Tradeoffs")
}

func TestTradeoffsCommand_JSONTop(t *testing.T) {
	out, _, err := runCmd(t, "tradeoffs", "--json", "--top", "1", writeDecision(t, decisionFile))
	require.NoError(t, err)

	var a scoring.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Len(t, a.TopTradeoffs, 1)
}

func TestRoot_InvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("log_level: chatty\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "version"})

	assert.Error(t, cmd.Execute())
}

func TestRoot_DebugLogsToStderr(t *testing.T) {
	out, errOut, err := runCmd(t, "--debug", "score", writeDecision(t, decisionFile))
	require.NoError(t, err)

	assert.NotContains(t, out, "level=DEBUG")
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "msg=scoring")
}
