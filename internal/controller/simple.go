package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "github.com/rezi-labs/cup/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd    *cobra.Command
	dryRun bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI. Interrupts reach the run through ctx itself.
func (s *SimpleUI) Start(ctx context.Context) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return ctx, nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayScan prints what the run is about to do.
func (s *SimpleUI) DisplayScan(ctx context.Context, info ScanInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.dryRun = info.DryRun
	s.printf("%s\n", formatScan(info))
}

// DisplayBatch prints the outcome of every Target in one file, followed by
// the dry-run diff when there is one.
func (s *SimpleUI) DisplayBatch(ctx context.Context, result m.BatchResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, line := range formatBatch(result, s.dryRun) {
		s.printf("%s\n", line)
	}

	if result.Diff != "" {
		s.printf("%s\n", result.Diff)
	}
}

// DisplaySummary prints a per-file table of the run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, results []m.BatchResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(results) == 0 {
		s.printf("No annotations found.\n")
		return
	}

	s.printf("\n%s", renderSummaryTable(results))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
