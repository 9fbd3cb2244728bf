package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/rezi-labs/cup/internal/adapter"
	m "github.com/rezi-labs/cup/internal/model"
)

// ErrRowOutOfBounds is returned when a Target's row no longer exists in the
// file it was scanned from.
var ErrRowOutOfBounds = errors.New("row out of bounds")

// Orchestrator groups Targets by file and applies each group with a single
// read and at most one write.
type Orchestrator interface {
	Partition(targets []m.Target) []m.FileBatch
	Run(ctx context.Context, targets []m.Target, threads int) <-chan m.BatchResult
	ProcessBatch(ctx context.Context, batch m.FileBatch) m.BatchResult
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*orchestrator)

// WithDryRun computes rewrites and diffs without writing files.
func WithDryRun(dryRun bool) OrchestratorOption {
	return func(o *orchestrator) {
		o.dryRun = dryRun
	}
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	resolver  adapter.Resolver
	dryRun    bool
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem adapter and tag resolver.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, resolver adapter.Resolver, opts ...OrchestratorOption) Orchestrator {
	o := &orchestrator{
		fsAdapter: fsAdapter,
		resolver:  resolver,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Partition groups targets by file path, keeping the order in which paths
// first appear.
func (o *orchestrator) Partition(targets []m.Target) []m.FileBatch {
	index := make(map[m.Path]int)

	var batches []m.FileBatch

	for _, target := range targets {
		i, ok := index[target.Path]
		if !ok {
			i = len(batches)
			index[target.Path] = i
			batches = append(batches, m.FileBatch{Path: target.Path})
		}

		batches[i].Targets = append(batches[i].Targets, target)
	}

	return batches
}

// Run processes one FileBatch per task on a pool of at most threads
// workers. Results are delivered as batches complete; the channel is closed
// once every batch is done.
func (o *orchestrator) Run(ctx context.Context, targets []m.Target, threads int) <-chan m.BatchResult {
	batches := o.Partition(targets)
	results := make(chan m.BatchResult, len(batches))

	go func() {
		defer close(results)

		var group errgroup.Group
		if threads > 0 {
			group.SetLimit(threads)
		}

		for _, batch := range batches {
			currentBatch := batch

			group.Go(func() error {
				results <- o.ProcessBatch(ctx, currentBatch)
				return nil
			})
		}

		_ = group.Wait()
	}()

	return results
}

// ProcessBatch applies every Target of batch in order against one
// in-memory copy of the file. A failing Target is recorded and skipped.
// Every applied Target counts as a mutation; the file is only written when
// its content actually changed.
func (o *orchestrator) ProcessBatch(ctx context.Context, batch m.FileBatch) m.BatchResult {
	result := m.BatchResult{Path: batch.Path}

	if err := ctx.Err(); err != nil {
		return o.failBatch(result, batch, err)
	}

	info, err := o.fsAdapter.FileInfo(ctx, batch.Path)
	if err != nil {
		slog.Error("Failed to stat file", "path", batch.Path, "error", err)
		return o.failBatch(result, batch, fmt.Errorf("stat %s: %w", batch.Path, err))
	}

	data, err := o.fsAdapter.ReadFile(ctx, batch.Path)
	if err != nil {
		slog.Error("Failed to read file", "path", batch.Path, "error", err)
		return o.failBatch(result, batch, fmt.Errorf("read %s: %w", batch.Path, err))
	}

	original := string(data)
	lines := strings.Split(original, "\n")

	for _, target := range batch.Targets {
		outcome := o.applyTarget(ctx, lines, target)
		if outcome.OK() {
			result.Mutations++
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	updated := strings.Join(lines, "\n")
	if updated == original {
		return result
	}

	if o.dryRun {
		result.Diff = unifiedDiff(batch.Path, original, updated)
		return result
	}

	if err := ctx.Err(); err != nil {
		slog.Warn("Run cancelled before write", "path", batch.Path)
		result.Err = fmt.Errorf("write %s: %w", batch.Path, err)

		return result
	}

	if err := o.fsAdapter.WriteFile(ctx, batch.Path, []byte(updated), info.Mode().Perm()); err != nil {
		slog.Error("Failed to write file", "path", batch.Path, "error", err)
		result.Err = fmt.Errorf("write %s: %w", batch.Path, err)

		return result
	}

	result.Written = true
	slog.Info("Updated file", "path", batch.Path, "mutations", result.Mutations)

	return result
}

// applyTarget resolves the Target's remote and rewrites its line in lines.
func (o *orchestrator) applyTarget(ctx context.Context, lines []string, target m.Target) m.Outcome {
	outcome := m.Outcome{Target: target}

	tag, err := o.resolver.Resolve(ctx, target.Remote)
	if err != nil {
		slog.Error("Failed to resolve latest tag", "target", target.Name, "remote", target.Remote.String(), "error", err)
		outcome.Err = fmt.Errorf("resolve %s: %w", target.Remote, err)

		return outcome
	}

	version := CleanTag(tag)
	outcome.Version = version

	if target.Row < 0 || target.Row >= len(lines) {
		slog.Error("Row out of bounds", "target", target.Name, "lines", len(lines))
		outcome.Err = fmt.Errorf("%w: row %d, file has %d lines", ErrRowOutOfBounds, target.Row+1, len(lines))

		return outcome
	}

	line := lines[target.Row]

	updated, err := RewriteLine(line, version)
	if err != nil {
		slog.Error("No version literal on annotated line", "target", target.Name, "error", err)
		outcome.Err = err

		return outcome
	}

	outcome.Changed = updated != line
	lines[target.Row] = updated

	slog.Debug("Rewrote line", "target", target.Name, "version", version, "changed", outcome.Changed)

	return outcome
}

func (o *orchestrator) failBatch(result m.BatchResult, batch m.FileBatch, err error) m.BatchResult {
	result.Err = err

	for _, target := range batch.Targets {
		result.Outcomes = append(result.Outcomes, m.Outcome{Target: target, Err: err})
	}

	return result
}

func unifiedDiff(path m.Path, before, after string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: string(path),
		ToFile:   string(path),
		Context:  1,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		slog.Debug("Failed to render diff", "path", path, "error", err)
		return ""
	}

	return text
}
