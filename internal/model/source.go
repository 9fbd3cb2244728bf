// Package model defines the data structures shared by the cup scanner and updater.
package model

import "fmt"

// Path represents a file system path.
type Path string

// SourceFile is a file handed to the annotation scanner.
type SourceFile struct {
	Path    Path
	Content string
}

// Target is one parsed annotation bound to exactly one line of one file.
type Target struct {
	Path Path
	// Row is the 0-based line index at scan time. It may be stale by the
	// time the file is re-read for writing.
	Row    int
	Name   string
	Remote RemoteIdentity
}

// NewTarget builds a Target named "<path>:<row+1>".
func NewTarget(path Path, row int, remote RemoteIdentity) Target {
	return Target{
		Path:   path,
		Row:    row,
		Name:   TargetName(path, row),
		Remote: remote,
	}
}

// TargetName returns the human-facing location of a row.
func TargetName(path Path, row int) string {
	return fmt.Sprintf("%s:%d", path, row+1)
}

// FileBatch groups all Targets sharing one file path. It is the unit of
// read-modify-write.
type FileBatch struct {
	Path    Path
	Targets []Target
}
