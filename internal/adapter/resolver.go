package adapter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	m "github.com/rezi-labs/cup/internal/model"
)

// ErrNoTags is returned when a remote has neither a latest release nor any tag.
var ErrNoTags = errors.New("no releases or tags found")

// ErrUnsupportedRemote is returned when no resolver is registered for a remote type.
var ErrUnsupportedRemote = errors.New("unsupported remote type")

// ErrInvalidRepository is returned when an identifier is not of the form "owner/repo".
var ErrInvalidRepository = errors.New("invalid repository identifier")

var repositoryPattern = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// SplitRepository checks that identifier names a single "owner/repo" pair
// and returns both halves. Surrounding whitespace and slashes are ignored.
func SplitRepository(identifier string) (owner, repo string, err error) {
	trimmed := strings.Trim(strings.TrimSpace(identifier), "/")
	if !repositoryPattern.MatchString(trimmed) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, identifier)
	}

	owner, repo, _ = strings.Cut(trimmed, "/")
	if isDotSegment(owner) || isDotSegment(repo) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, identifier)
	}

	return owner, repo, nil
}

func isDotSegment(s string) bool {
	return strings.Trim(s, ".") == ""
}

// Resolver looks up the latest published tag of a remote identity.
type Resolver interface {
	Resolve(ctx context.Context, identity m.RemoteIdentity) (string, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, identity m.RemoteIdentity) (string, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, identity m.RemoteIdentity) (string, error) {
	return f(ctx, identity)
}

// Registry dispatches resolution to the strategy registered for the
// identity's remote type.
type Registry struct {
	byType map[m.RemoteType]Resolver
}

// Verify Registry implements Resolver.
var _ Resolver = (*Registry)(nil)

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[m.RemoteType]Resolver)}
}

// Register binds a resolver to a remote type, replacing any previous one.
func (r *Registry) Register(remote m.RemoteType, resolver Resolver) *Registry {
	r.byType[remote] = resolver
	return r
}

// Resolve implements Resolver.
func (r *Registry) Resolve(ctx context.Context, identity m.RemoteIdentity) (string, error) {
	resolver, ok := r.byType[identity.Type]
	if !ok || resolver == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRemote, identity.Type)
	}

	return resolver.Resolve(ctx, identity)
}
