package model

import "strings"

// RemoteType selects the registry a RemoteIdentity lives in.
type RemoteType string

const (
	// RemoteGitHub resolves identities of the form "owner/repo" against GitHub releases and tags.
	RemoteGitHub RemoteType = "GitHub"
)

// String returns the keyword used for the remote type in annotations.
func (r RemoteType) String() string {
	return string(r)
}

// ParseRemoteType maps a configured remote name to a RemoteType. Names are
// matched case-insensitively.
func ParseRemoteType(name string) RemoteType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case strings.ToLower(string(RemoteGitHub)):
		return RemoteGitHub
	default:
		// GitHub is the only registry so far; unknown names resolve there.
		return RemoteGitHub
	}
}

// RemoteIdentity names an entry in an external release registry.
type RemoteIdentity struct {
	Type       RemoteType
	Identifier string
}

func (r RemoteIdentity) String() string {
	return string(r.Type) + ":" + r.Identifier
}
