package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	m "github.com/rezi-labs/cup/internal/model"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// formatOutcome renders one Target result: "file:line → version" on
// success, "file:line" followed by the cause on failure.
func formatOutcome(outcome m.Outcome) string {
	if !outcome.OK() {
		return fmt.Sprintf("%s %s %s",
			errorStyle.Render("✗"),
			outcome.Target.Name,
			faintStyle.Render(outcome.Err.Error()),
		)
	}

	line := fmt.Sprintf("%s %s → %s",
		successStyle.Render("✓"),
		outcome.Target.Name,
		boldStyle.Render(outcome.Version),
	)

	if !outcome.Changed {
		line += " " + faintStyle.Render("(up to date)")
	}

	return line
}

// formatBatch renders all lines produced for one file.
func formatBatch(result m.BatchResult, dryRun bool) []string {
	lines := make([]string, 0, len(result.Outcomes)+2)

	for _, outcome := range result.Outcomes {
		lines = append(lines, formatOutcome(outcome))
	}

	switch {
	case result.Err != nil:
		lines = append(lines, errorStyle.Render(fmt.Sprintf("  %s not updated: %v", result.Path, result.Err)))
	case dryRun && result.Diff != "":
		lines = append(lines, infoStyle.Render(fmt.Sprintf("  %d update(s) pending in %s", result.Mutations, result.Path)))
	case result.Written:
		lines = append(lines, infoStyle.Render(fmt.Sprintf("  %d update(s) written to %s", result.Mutations, result.Path)))
	case result.Mutations > 0:
		lines = append(lines, faintStyle.Render(fmt.Sprintf("  %s already up to date", result.Path)))
	}

	return lines
}

type fileStat struct {
	path    string
	updated int
	failed  int
	written bool
}

func buildFileStats(results []m.BatchResult) []fileStat {
	stats := make([]fileStat, 0, len(results))

	for _, result := range results {
		stats = append(stats, fileStat{
			path:    string(result.Path),
			updated: result.Mutations,
			failed:  result.Failed(),
			written: result.Written,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].path < stats[j].path
	})

	return stats
}

func renderSummaryTable(results []m.BatchResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Updated", "Failed", "Written"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	totalUpdated, totalFailed, totalWritten := 0, 0, 0

	for _, stat := range buildFileStats(results) {
		written := "no"
		if stat.written {
			written = "yes"
			totalWritten++
		}

		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.updated), fmt.Sprintf("%d", stat.failed), written})

		totalUpdated += stat.updated
		totalFailed += stat.failed
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(results)),
		fmt.Sprintf("%d", totalUpdated),
		fmt.Sprintf("%d", totalFailed),
		fmt.Sprintf("%d", totalWritten),
	})

	table.Render()

	return tableBuffer.String()
}

func formatScan(info ScanInfo) string {
	mode := ""
	if info.DryRun {
		mode = " (dry run)"
	}

	return fmt.Sprintf("Found %d annotation(s) in %d of %d file(s), using %d worker(s)%s",
		info.Targets, info.Batches, info.Files, info.Threads, mode)
}
