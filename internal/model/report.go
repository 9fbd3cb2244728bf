package model

// VersionToken is a version literal located on a line together with the
// text needed to rebuild that line around a new value.
type VersionToken struct {
	Prefix  string
	Literal string
	Closing string
	Trailer string
	// Syntax is the name of the catalog entry that matched.
	Syntax string
}

// Outcome is the result of processing a single Target.
type Outcome struct {
	Target  Target
	Version string // cleaned tag written to the line
	Changed bool   // false when the line already carried Version
	Err     error
}

// OK reports whether the Target was resolved and rewritten.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// BatchResult is the result of processing one FileBatch.
type BatchResult struct {
	Path      Path
	Outcomes  []Outcome
	Mutations int
	Written   bool
	// Diff holds a unified diff of the batch when running in dry-run mode.
	Diff string
	// Err is set when reading or writing the file failed.
	Err error
}

// Failed returns the number of Targets that could not be applied.
func (r BatchResult) Failed() int {
	failed := 0

	for _, outcome := range r.Outcomes {
		if !outcome.OK() {
			failed++
		}
	}

	return failed
}
