package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	m "github.com/rezi-labs/cup/internal/model"
)

// maxVisibleLines caps the live log shown under the spinner.
const maxVisibleLines = 12

// TUI implements UI using Bubble Tea for an interactive progress display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background. The terminal is
// in raw mode while it runs, so Ctrl+C arrives as a key press instead of
// SIGINT; the returned context is cancelled when that happens.
func (t *TUI) Start(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	model := newProgressModel()
	model.interrupt = cancel

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			slog.Debug("Progress view stopped", "error", err)
		}
	}()

	return runCtx, nil
}

// Close stops the program and waits until the final frame is rendered.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(doneMsg{})
	<-t.done
	t.cancel()
}

// DisplayScan forwards the scan result to the progress view.
func (t *TUI) DisplayScan(_ context.Context, info ScanInfo) {
	t.send(scanMsg(info))
}

// DisplayBatch forwards a completed file to the progress view.
func (t *TUI) DisplayBatch(_ context.Context, result m.BatchResult) {
	t.send(batchMsg{result: result})
}

// DisplaySummary hands the final results to the progress view.
func (t *TUI) DisplaySummary(_ context.Context, results []m.BatchResult) {
	t.send(summaryMsg{results: results})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	t.program.Send(msg)
}

type (
	scanMsg    ScanInfo
	batchMsg   struct{ result m.BatchResult }
	summaryMsg struct{ results []m.BatchResult }
	doneMsg    struct{}
)

// progressModel is the Bubble Tea model behind the TUI.
type progressModel struct {
	spinner   spinner.Model
	info      ScanInfo
	scanned   bool
	completed int
	lines     []string
	diffs     []string
	summary   string
	empty     bool
	done      bool
	// interrupt cancels the run when the user presses Ctrl+C.
	interrupt context.CancelFunc
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = infoStyle

	return progressModel{spinner: s}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanMsg:
		pm.info = ScanInfo(msg)
		pm.scanned = true

		return pm, nil

	case batchMsg:
		pm.completed++
		pm.lines = append(pm.lines, formatBatch(msg.result, pm.info.DryRun)...)

		if msg.result.Diff != "" {
			pm.diffs = append(pm.diffs, msg.result.Diff)
		}

		return pm, nil

	case summaryMsg:
		if len(msg.results) == 0 {
			pm.empty = true
		} else {
			pm.summary = renderSummaryTable(msg.results)
		}

		return pm, nil

	case doneMsg:
		pm.done = true
		return pm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			pm.done = true

			if pm.interrupt != nil {
				pm.interrupt()
			}

			return pm, tea.Quit
		}

		return pm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	if pm.scanned {
		b.WriteString(formatScan(pm.info) + "\n")
	}

	if !pm.done {
		fmt.Fprintf(&b, "%s Updating files %d/%d\n", pm.spinner.View(), pm.completed, pm.info.Batches)

		for _, line := range tail(pm.lines, maxVisibleLines) {
			b.WriteString(line + "\n")
		}

		return b.String()
	}

	for _, line := range pm.lines {
		b.WriteString(line + "\n")
	}

	for _, diff := range pm.diffs {
		b.WriteString(diff + "\n")
	}

	if pm.empty {
		b.WriteString("No annotations found.\n")
	}

	if pm.summary != "" {
		b.WriteString("\n" + pm.summary)
	}

	return b.String()
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}

	return lines[len(lines)-n:]
}
