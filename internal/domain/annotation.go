package domain

import (
	"strings"

	m "github.com/rezi-labs/cup/internal/model"
)

// DefaultMarker is the token that introduces an annotation.
const DefaultMarker = "[cup]"

// AnnotationConfig controls how annotations are recognised.
type AnnotationConfig struct {
	Marker        string
	DefaultRemote string
}

// AnnotationParser extracts Targets from annotated lines.
type AnnotationParser interface {
	ParseLine(path m.Path, row int, line string) (m.Target, bool)
	Scan(files []m.SourceFile) []m.Target
}

type annotationParser struct {
	config AnnotationConfig
}

// NewAnnotationParser constructs an AnnotationParser. An empty marker
// falls back to DefaultMarker.
func NewAnnotationParser(config AnnotationConfig) AnnotationParser {
	if config.Marker == "" {
		config.Marker = DefaultMarker
	}

	return &annotationParser{config: config}
}

// ParseLine reads the annotation on line, if any. Text after the first
// marker has the shape `["GitHub" <ws>] <identifier> [anything]`; a marker
// with nothing after it is skipped.
func (p *annotationParser) ParseLine(path m.Path, row int, line string) (m.Target, bool) {
	idx := strings.Index(line, p.config.Marker)
	if idx < 0 {
		return m.Target{}, false
	}

	rest := strings.TrimSpace(line[idx+len(p.config.Marker):])
	if rest == "" {
		return m.Target{}, false
	}

	remoteType := m.ParseRemoteType(p.config.DefaultRemote)

	if after, ok := strings.CutPrefix(rest, m.RemoteGitHub.String()); ok {
		remoteType = m.RemoteGitHub
		rest = strings.TrimSpace(after)
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return m.Target{}, false
	}

	return m.NewTarget(path, row, m.RemoteIdentity{
		Type:       remoteType,
		Identifier: fields[0],
	}), true
}

// Scan parses every line of every file and returns the Targets in file and
// line order.
func (p *annotationParser) Scan(files []m.SourceFile) []m.Target {
	var targets []m.Target

	for _, file := range files {
		if !strings.Contains(file.Content, p.config.Marker) {
			continue
		}

		for row, line := range strings.Split(file.Content, "\n") {
			if target, ok := p.ParseLine(file.Path, row, line); ok {
				targets = append(targets, target)
			}
		}
	}

	return targets
}
