package controller

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, model progressModel, msg tea.Msg) (progressModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	pm, ok := next.(progressModel)
	require.True(t, ok)

	return pm, cmd
}

func TestProgressModel_TracksBatches(t *testing.T) {
	model := newProgressModel()

	model, _ = update(t, model, scanMsg(ScanInfo{Files: 5, Targets: 4, Batches: 2, Threads: 2}))
	assert.Contains(t, model.View(), "Updating files 0/2")

	results := sampleResults()
	model, _ = update(t, model, batchMsg{result: results[0]})

	view := model.View()
	assert.Contains(t, view, "Updating files 1/2")
	assert.Contains(t, view, "versions.txt:1")
}

func TestProgressModel_FinalView(t *testing.T) {
	model := newProgressModel()
	results := sampleResults()

	model, _ = update(t, model, scanMsg(ScanInfo{Files: 5, Targets: 4, Batches: 2, Threads: 2, DryRun: true}))
	results[0].Diff = "+v = 2.0.0\n"
	model, _ = update(t, model, batchMsg{result: results[0]})
	model, _ = update(t, model, batchMsg{result: results[1]})
	model, _ = update(t, model, summaryMsg{results: results})
	model, cmd := update(t, model, doneMsg{})

	require.NotNil(t, cmd)
	assert.True(t, model.done)

	view := model.View()
	assert.NotContains(t, view, "Updating files")
	assert.Contains(t, view, "1 update(s) pending in versions.txt")
	assert.Contains(t, view, "+v = 2.0.0")
	assert.Contains(t, strings.ToUpper(view), "TOTAL FILES 2")
}

func TestProgressModel_EmptySummary(t *testing.T) {
	model := newProgressModel()

	model, _ = update(t, model, summaryMsg{})
	model, _ = update(t, model, doneMsg{})

	assert.Contains(t, model.View(), "No annotations found.")
}

func TestProgressModel_CtrlCQuits(t *testing.T) {
	model := newProgressModel()

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, model.done)

	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	assert.True(t, model.done)
}

func TestProgressModel_CtrlCCancelsRun(t *testing.T) {
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := newProgressModel()
	model.interrupt = cancel

	_, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.ErrorIs(t, runCtx.Err(), context.Canceled)
}

func TestTUI_StartCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTUI(&strings.Builder{}).Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTail(t *testing.T) {
	lines := []string{"a", "b", "c"}

	assert.Equal(t, lines, tail(lines, 5))
	assert.Equal(t, []string{"b", "c"}, tail(lines, 2))
}

func TestTUI_SendWithoutStartIsNoop(t *testing.T) {
	ctx := context.Background()
	tui := NewTUI(&strings.Builder{})

	tui.DisplayScan(ctx, ScanInfo{})
	tui.DisplayBatch(ctx, sampleResults()[0])
	tui.DisplaySummary(ctx, nil)
	tui.Close(ctx)
}
