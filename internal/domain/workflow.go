package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/rezi-labs/cup/internal/adapter"
	"github.com/rezi-labs/cup/internal/controller"
	m "github.com/rezi-labs/cup/internal/model"
)

// UpdateArgs contains the arguments for one update run.
type UpdateArgs struct {
	Root    m.Path
	Threads int
	DryRun  bool
	// Report is where a YAML summary of the run is written. Empty disables it.
	Report m.Path
}

// Workflow defines the end-to-end update run.
type Workflow interface {
	Update(ctx context.Context, args UpdateArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
	AnnotationParser
	Orchestrator
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	parser AnnotationParser,
	orchestrator Orchestrator,
) Workflow {
	return &workflow{
		SourceFSAdapter:  fsAdapter,
		ReportStore:      reportStore,
		UI:               ui,
		AnnotationParser: parser,
		Orchestrator:     orchestrator,
	}
}

// Update scans args.Root for annotations, updates every annotated line and
// reports the outcome. Per-target failures are reported through the UI and
// do not fail the run; only scan, display and report errors or an interrupt do.
func (w *workflow) Update(ctx context.Context, args UpdateArgs) error {
	threads := args.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	files, err := w.CollectFiles(ctx, args.Root)
	if err != nil {
		slog.Error("Failed to scan directory", "root", args.Root, "error", err)
		return fmt.Errorf("scan %s: %w", args.Root, err)
	}

	targets := w.Scan(files)
	batches := w.Partition(targets)

	slog.Info("Scan complete", "root", args.Root, "files", len(files), "targets", len(targets), "batches", len(batches))

	runCtx, err := w.Start(ctx)
	if err != nil {
		slog.Error("Failed to start UI", "error", err)
		return fmt.Errorf("start ui: %w", err)
	}

	w.DisplayScan(runCtx, controller.ScanInfo{
		Files:   len(files),
		Targets: len(targets),
		Batches: len(batches),
		Threads: threads,
		DryRun:  args.DryRun,
	})

	results := make([]m.BatchResult, 0, len(batches))

	for result := range w.Run(runCtx, targets, threads) {
		w.DisplayBatch(runCtx, result)
		results = append(results, result)
	}

	w.DisplaySummary(runCtx, results)
	w.Close(runCtx)

	if err := runCtx.Err(); err != nil {
		slog.Warn("Update interrupted", "completed", len(results), "batches", len(batches))
		return fmt.Errorf("update interrupted: %w", err)
	}

	if args.Report == "" {
		return nil
	}

	if err := w.SaveReport(ctx, args.Report, results); err != nil {
		slog.Error("Failed to save report", "path", args.Report, "error", err)
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}
