package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/rezi-labs/cup/internal/model"
)

// ReportStore persists the outcome of an update run.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, results []m.BatchResult) error
}

// report is the on-disk shape of a run report.
type report struct {
	GeneratedAt time.Time    `yaml:"generated_at"`
	DryRun      bool         `yaml:"dry_run"`
	Files       []fileReport `yaml:"files"`
}

type fileReport struct {
	Path      string         `yaml:"path"`
	Mutations int            `yaml:"mutations"`
	Written   bool           `yaml:"written"`
	Error     string         `yaml:"error,omitempty"`
	Targets   []targetReport `yaml:"targets"`
}

type targetReport struct {
	Name    string `yaml:"name"`
	Remote  string `yaml:"remote"`
	Version string `yaml:"version,omitempty"`
	Changed bool   `yaml:"changed"`
	Error   string `yaml:"error,omitempty"`
}

// YAMLReportStore writes reports as YAML documents.
type YAMLReportStore struct {
	dryRun bool
	now    func() time.Time
}

// NewReportStore creates a YAMLReportStore. dryRun is recorded in every report.
func NewReportStore(dryRun bool) *YAMLReportStore {
	return &YAMLReportStore{dryRun: dryRun, now: time.Now}
}

// SaveReport implements ReportStore.
func (s *YAMLReportStore) SaveReport(ctx context.Context, path m.Path, results []m.BatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := report{
		GeneratedAt: s.now().UTC(),
		DryRun:      s.dryRun,
		Files:       make([]fileReport, 0, len(results)),
	}

	for _, result := range results {
		doc.Files = append(doc.Files, toFileReport(result))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

func toFileReport(result m.BatchResult) fileReport {
	fr := fileReport{
		Path:      string(result.Path),
		Mutations: result.Mutations,
		Written:   result.Written,
		Targets:   make([]targetReport, 0, len(result.Outcomes)),
	}

	if result.Err != nil {
		fr.Error = result.Err.Error()
	}

	for _, outcome := range result.Outcomes {
		tr := targetReport{
			Name:    outcome.Target.Name,
			Remote:  outcome.Target.Remote.String(),
			Version: outcome.Version,
			Changed: outcome.Changed,
		}

		if outcome.Err != nil {
			tr.Error = outcome.Err.Error()
		}

		fr.Targets = append(fr.Targets, tr)
	}

	return fr
}
