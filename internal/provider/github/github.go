package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	github_ratelimit "github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/alanmeadows/issuepr/internal/provider"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Option configures a Backend.
type Option func(*Backend)

// WithBaseURL points the backend at a GitHub Enterprise Server API URL.
func WithBaseURL(baseURL string) Option {
	return func(b *Backend) {
		b.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used as the base transport. The token
// is still applied on top of it, and so is the rate limit wait when
// WithRateLimitWait is enabled.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Backend) {
		b.httpClient = client
	}
}

// WithRateLimitWait makes the backend wait out primary and secondary rate
// limits before sending a request. Off by default.
func WithRateLimitWait(enabled bool) Option {
	return func(b *Backend) {
		b.waitOnRateLimit = enabled
	}
}

// Backend implements provider.Backend for GitHub.
type Backend struct {
	client          *gh.Client
	token           string
	baseURL         string
	httpClient      *http.Client
	waitOnRateLimit bool
}

// NewBackend creates a GitHub backend authenticated with token.
func NewBackend(token string, opts ...Option) (*Backend, error) {
	b := &Backend{token: token}
	for _, opt := range opts {
		opt(b)
	}

	base := b.httpClient
	if b.waitOnRateLimit {
		if base == nil {
			base = github_ratelimit.NewClient(nil)
		} else {
			limited := *base
			limited.Transport = github_ratelimit.New(base.Transport)
			base = &limited
		}
	}

	httpClient := base
	if token != "" {
		ctx := context.Background()
		if base != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := gh.NewClient(httpClient)
	if b.baseURL != "" && strings.TrimSuffix(b.baseURL, "/") != DefaultBaseURL {
		var err error
		client, err = client.WithEnterpriseURLs(b.baseURL, b.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", b.baseURL, err)
		}
	}
	b.client = client

	return b, nil
}

// GetIssue fetches an issue. The assignee is the issue's assignee, or the
// first of its assignees when the singular field is unset.
func (b *Backend) GetIssue(ctx context.Context, owner, repo string, number int) (*provider.Issue, error) {
	slog.Debug("fetching issue", "owner", owner, "repo", repo, "number", number)

	issue, _, err := b.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, classify(err)
	}

	return mapIssue(issue, owner, repo), nil
}

// CreateRef creates ref at sha.
func (b *Backend) CreateRef(ctx context.Context, owner, repo, ref, sha string) (*provider.Ref, error) {
	slog.Debug("creating ref", "owner", owner, "repo", repo, "ref", ref, "sha", sha)

	created, _, err := b.client.Git.CreateRef(ctx, owner, repo, gh.CreateRef{Ref: ref, SHA: sha})
	if err != nil {
		return nil, classify(err)
	}

	return &provider.Ref{
		Name: created.GetRef(),
		SHA:  created.GetObject().GetSHA(),
		URL:  created.GetURL(),
	}, nil
}

// CreatePullRequest opens a pull request in pr.Owner/pr.Repo.
func (b *Backend) CreatePullRequest(ctx context.Context, pr provider.NewPullRequest) (*provider.PullRequest, error) {
	slog.Debug("creating pull request",
		"owner", pr.Owner, "repo", pr.Repo,
		"head", pr.Head, "base", pr.Base, "draft", pr.Draft)

	created, _, err := b.client.PullRequests.Create(ctx, pr.Owner, pr.Repo, &gh.NewPullRequest{
		Title: gh.Ptr(pr.Title),
		Head:  gh.Ptr(pr.Head),
		Base:  gh.Ptr(pr.Base),
		Body:  gh.Ptr(pr.Body),
		Draft: gh.Ptr(pr.Draft),
	})
	if err != nil {
		return nil, classify(err)
	}

	return &provider.PullRequest{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
		Head:   created.GetHead().GetRef(),
		Base:   created.GetBase().GetRef(),
		Draft:  created.GetDraft(),
	}, nil
}

// mapIssue converts a GitHub Issue to provider.Issue.
func mapIssue(issue *gh.Issue, owner, repo string) *provider.Issue {
	assignee := issue.GetAssignee().GetLogin()
	if assignee == "" && len(issue.Assignees) > 0 {
		assignee = issue.Assignees[0].GetLogin()
	}

	return &provider.Issue{
		Number:   issue.GetNumber(),
		Title:    issue.GetTitle(),
		Assignee: assignee,
		Owner:    owner,
		Repo:     repo,
		URL:      issue.GetHTMLURL(),
	}
}

// classify maps go-github errors onto the provider error taxonomy without
// changing their message.
func classify(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return provider.Classify(err, 0, rateErr.Message)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return provider.Classify(err, 0, abuseErr.Message)
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return provider.Classify(err, respErr.Response.StatusCode, respErr.Message)
	}

	return provider.Classify(err, 0, "")
}

// Verify Backend implements provider.Backend at compile time.
var _ provider.Backend = (*Backend)(nil)
