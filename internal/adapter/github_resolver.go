package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"

	m "github.com/rezi-labs/cup/internal/model"
)

const (
	// DefaultGitHubAPIURL is the public GitHub REST endpoint.
	DefaultGitHubAPIURL = "https://api.github.com"
	// DefaultGitHubTimeout bounds a single GitHub request.
	DefaultGitHubTimeout = 20 * time.Second

	githubUserAgent = "cup (+https://github.com/rezi-labs/cup)"
)

// HTTPStatusError reports a non-2xx answer from a registry.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}

	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Unwrap returns the client error behind the status, if any.
func (e *HTTPStatusError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// GitHubConfig configures a GitHubResolver.
type GitHubConfig struct {
	APIURL  string
	Token   string
	Timeout time.Duration
}

// GitHubResolver resolves "owner/repo" identities with the GitHub REST API.
// It asks for the latest release first and falls back to the most recent tag.
type GitHubResolver struct {
	apiURL     string
	httpClient *http.Client
	api        *github.Client
}

// Verify GitHubResolver implements Resolver.
var _ Resolver = (*GitHubResolver)(nil)

// NewGitHubResolver creates a GitHubResolver. Zero values in cfg select the defaults.
func NewGitHubResolver(cfg GitHubConfig) *GitHubResolver {
	return NewGitHubResolverWithClient(cfg, nil)
}

// NewGitHubResolverWithClient creates a GitHubResolver using client for all requests.
// This constructor enables dependency injection for testing.
func NewGitHubResolverWithClient(cfg GitHubConfig, client *http.Client) *GitHubResolver {
	apiURL := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if apiURL == "" {
		apiURL = DefaultGitHubAPIURL
	}

	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultGitHubTimeout
		}

		client = &http.Client{Timeout: timeout}
	}

	api := github.NewClient(client)
	api.UserAgent = githubUserAgent

	if baseURL, err := url.Parse(apiURL + "/"); err == nil {
		api.BaseURL = baseURL
	} else {
		slog.Warn("Invalid GitHub API URL, using the default", "url", apiURL, "error", err)
		apiURL = DefaultGitHubAPIURL
	}

	if token := strings.TrimSpace(cfg.Token); token != "" {
		api = api.WithAuthToken(token)
	}

	return &GitHubResolver{
		apiURL:     apiURL,
		httpClient: client,
		api:        api,
	}
}

// Resolve implements Resolver.
func (g *GitHubResolver) Resolve(ctx context.Context, identity m.RemoteIdentity) (string, error) {
	owner, repo, err := SplitRepository(identity.Identifier)
	if err != nil {
		return "", err
	}

	tag, releaseErr := g.latestRelease(ctx, owner, repo)
	if releaseErr == nil {
		return tag, nil
	}

	slog.Debug("Latest release lookup failed, falling back to tags", "owner", owner, "repo", repo, "error", releaseErr)

	tag, tagErr := g.latestTag(ctx, owner, repo)
	if tagErr != nil {
		return "", fmt.Errorf("release and tag lookups failed: %w", errors.Join(releaseErr, tagErr))
	}

	return tag, nil
}

func (g *GitHubResolver) latestRelease(ctx context.Context, owner, repo string) (string, error) {
	release, resp, err := g.api.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", statusError(resp, err)
	}

	tag := release.GetTagName()
	if tag == "" {
		return "", fmt.Errorf("latest release of %s/%s has no tag_name", owner, repo)
	}

	return tag, nil
}

func (g *GitHubResolver) latestTag(ctx context.Context, owner, repo string) (string, error) {
	tags, resp, err := g.api.Repositories.ListTags(ctx, owner, repo, &github.ListOptions{PerPage: 1})
	if err != nil {
		return "", statusError(resp, err)
	}

	if len(tags) == 0 || tags[0].GetName() == "" {
		return "", ErrNoTags
	}

	return tags[0].GetName(), nil
}

// statusError turns an error answer into an HTTPStatusError so callers can
// inspect the status without depending on the client library.
func statusError(resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil || resp.StatusCode < 300 {
		return err
	}

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.String()
	}

	return &HTTPStatusError{URL: endpoint, StatusCode: resp.StatusCode, Err: err}
}
