package provider

import "context"

//go:generate mockgen -destination=mock/mock_backend.go -package=mock github.com/alanmeadows/issuepr/internal/provider Backend

// Backend is the interface to the code hosting API.
// Implementations perform a single blocking round-trip per call and never
// retry; failures are returned classified (see APIError) with the original
// message intact.
type Backend interface {
	// GetIssue fetches an issue's metadata.
	GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error)

	// CreateRef creates a fully qualified ref (refs/heads/...) pointing at sha.
	CreateRef(ctx context.Context, owner, repo, ref, sha string) (*Ref, error)

	// CreatePullRequest opens a pull request.
	CreatePullRequest(ctx context.Context, pr NewPullRequest) (*PullRequest, error)
}

// Issue contains the issue metadata the pipeline needs.
type Issue struct {
	// Number is the repository-scoped issue number.
	Number int
	// Title is the free-text issue title.
	Title string
	// Assignee is the login of the (first) assignee, empty when unassigned.
	Assignee string
	// Owner is the repository owner the issue was fetched from.
	Owner string
	// Repo is the repository name the issue was fetched from.
	Repo string
	// URL is the web URL of the issue.
	URL string
}

// Ref is a created git reference.
type Ref struct {
	// Name is the fully qualified ref, e.g. refs/heads/issue/5-improve-logging.
	Name string
	// SHA is the commit the ref points at.
	SHA string
	// URL is the API URL of the ref.
	URL string
}

// NewPullRequest holds the parameters of a pull request to open.
type NewPullRequest struct {
	// Owner is the owner path segment of the create call.
	Owner string
	// Repo is the repository name.
	Repo string
	// Head is the branch being merged from.
	Head string
	// Base is the branch being merged into.
	Base string
	Title string
	Body  string
	Draft bool
}

// PullRequest is a created pull request.
type PullRequest struct {
	Number int
	URL    string
	Head   string
	Base   string
	Draft  bool
}
