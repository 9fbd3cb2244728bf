// Package controller provides output adapters for displaying update results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "github.com/rezi-labs/cup/internal/model"
)

// ScanInfo describes what a run is about to process.
type ScanInfo struct {
	Files   int // files scanned
	Targets int // annotations found
	Batches int // files carrying at least one annotation
	Threads int
	DryRun  bool
}

// UI defines how an update run reports progress.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Start prepares the display and returns the context the run should use.
	// It is cancelled when the user interrupts the run from the display.
	Start(ctx context.Context) (context.Context, error)
	Close(ctx context.Context)
	DisplayScan(ctx context.Context, info ScanInfo)
	DisplayBatch(ctx context.Context, result m.BatchResult)
	DisplaySummary(ctx context.Context, results []m.BatchResult)
}

// NewUI returns the interactive TUI when writing to a terminal and the
// line-oriented SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
