package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	m "github.com/rezi-labs/cup/internal/model"
)

// DefaultCommandTimeout bounds a single external command.
const DefaultCommandTimeout = 30 * time.Second

// CommandRunner abstracts running an external program.
type CommandRunner interface {
	// Run executes name with args and returns what it wrote to stdout and stderr.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// LocalCommandRunner provides a concrete implementation using os/exec.
type LocalCommandRunner struct {
	timeout time.Duration
}

// NewLocalCommandRunner constructs a LocalCommandRunner. A zero timeout
// selects DefaultCommandTimeout.
func NewLocalCommandRunner(timeout time.Duration) *LocalCommandRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	return &LocalCommandRunner{timeout: timeout}
}

// Run implements CommandRunner.
func (a *LocalCommandRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - the program is fixed by the caller, args carry a repository name
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String(), stderr.String(), err
}

// GhCLIResolver resolves "owner/repo" identities through the GitHub CLI,
// reusing whatever authentication gh already has. Like GitHubResolver it
// asks for the latest release first and falls back to the most recent tag.
type GhCLIResolver struct {
	runner CommandRunner
}

// Verify GhCLIResolver implements Resolver.
var _ Resolver = (*GhCLIResolver)(nil)

// NewGhCLIResolver creates a GhCLIResolver backed by runner.
func NewGhCLIResolver(runner CommandRunner) *GhCLIResolver {
	return &GhCLIResolver{runner: runner}
}

// Resolve implements Resolver.
func (g *GhCLIResolver) Resolve(ctx context.Context, identity m.RemoteIdentity) (string, error) {
	owner, repo, err := SplitRepository(identity.Identifier)
	if err != nil {
		return "", err
	}

	fullName := owner + "/" + repo

	tag, releaseErr := g.latestRelease(ctx, fullName)
	if releaseErr == nil {
		return tag, nil
	}

	slog.Debug("gh release view failed, falling back to tags", "repo", fullName, "error", releaseErr)

	tag, tagErr := g.latestTag(ctx, fullName)
	if tagErr != nil {
		return "", fmt.Errorf("release and tag lookups failed: %w", errors.Join(releaseErr, tagErr))
	}

	return tag, nil
}

func (g *GhCLIResolver) latestRelease(ctx context.Context, fullName string) (string, error) {
	stdout, err := g.gh(ctx, "release", "view", "--repo", fullName, "--json", "tagName")
	if err != nil {
		return "", err
	}

	tag := gjson.Get(stdout, "tagName").String()
	if tag == "" {
		return "", fmt.Errorf("latest release of %s has no tagName", fullName)
	}

	return tag, nil
}

func (g *GhCLIResolver) latestTag(ctx context.Context, fullName string) (string, error) {
	stdout, err := g.gh(ctx, "api", "repos/"+fullName+"/tags?per_page=1")
	if err != nil {
		return "", err
	}

	tag := gjson.Get(stdout, "0.name").String()
	if tag == "" {
		return "", ErrNoTags
	}

	return tag, nil
}

// gh runs the GitHub CLI and checks that it answered with JSON.
func (g *GhCLIResolver) gh(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := g.runner.Run(ctx, "gh", args...)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return "", fmt.Errorf("gh %s %s: %w: %s", args[0], args[1], err, msg)
		}

		return "", fmt.Errorf("gh %s %s: %w", args[0], args[1], err)
	}

	if !gjson.Valid(stdout) {
		return "", fmt.Errorf("invalid JSON from gh %s %s", args[0], args[1])
	}

	return stdout, nil
}
