// Package trigger describes the event that started a run: the repository,
// the commit, and the issue number. The Context is loaded once and passed
// explicitly to everything that needs it.
package trigger

import (
	"errors"
	"fmt"

	"github.com/sethvargo/go-githubactions"

	"github.com/alanmeadows/issuepr/internal/repo"
)

// Context is the trigger of a run.
type Context struct {
	// Owner is the repository owner.
	Owner string
	// Repo is the repository name.
	Repo string
	// SHA is the commit new branches are created at.
	SHA string
	// IssueNumber is the issue that triggered the run.
	IssueNumber int
	// APIURL is the REST API endpoint of the host, empty for the default.
	APIURL string
}

// Overrides replace fields of a loaded Context. Zero values are ignored.
type Overrides struct {
	// Repository is an "owner/repo" slug.
	Repository string
	SHA        string
	Issue      int
	APIURL     string
}

// FullName returns owner/repo.
func (c Context) FullName() string {
	return c.Owner + "/" + c.Repo
}

// Validate reports every missing field.
func (c Context) Validate() error {
	var errs []error
	if c.Owner == "" || c.Repo == "" {
		errs = append(errs, errors.New("repository owner/name is not set"))
	}
	if c.SHA == "" {
		errs = append(errs, errors.New("commit SHA is not set"))
	}
	if c.IssueNumber <= 0 {
		errs = append(errs, errors.New("issue number is not set"))
	}
	return errors.Join(errs...)
}

// Apply returns a copy of c with the non-zero overrides applied.
func (c Context) Apply(o Overrides) (Context, error) {
	if o.Repository != "" {
		owner, name, err := repo.ParseOwnerRepo(o.Repository)
		if err != nil {
			return c, fmt.Errorf("invalid repository %q: %w", o.Repository, err)
		}
		c.Owner, c.Repo = owner, name
	}
	if o.SHA != "" {
		c.SHA = o.SHA
	}
	if o.Issue > 0 {
		c.IssueNumber = o.Issue
	}
	if o.APIURL != "" {
		c.APIURL = o.APIURL
	}
	return c, nil
}

// FromAction loads the Context from the GitHub Actions runtime: the
// repository slug, the commit SHA, the API URL, and the issue number from
// the event payload.
func FromAction(action *githubactions.Action) (Context, error) {
	ghctx, err := action.Context()
	if err != nil {
		return Context{}, fmt.Errorf("reading Actions context: %w", err)
	}

	var c Context
	if ghctx.Repository != "" {
		owner, name, err := repo.ParseOwnerRepo(ghctx.Repository)
		if err != nil {
			return Context{}, fmt.Errorf("invalid GITHUB_REPOSITORY %q: %w", ghctx.Repository, err)
		}
		c.Owner, c.Repo = owner, name
	}
	c.SHA = ghctx.SHA
	c.APIURL = ghctx.APIURL
	c.IssueNumber = IssueNumberFromEvent(ghctx.Event)

	return c, nil
}

// FromRepository loads the Context from a local checkout: HEAD is the
// commit and the origin remote names the repository. The issue number is
// left unset.
func FromRepository(dir string) (Context, error) {
	local, err := repo.Open(dir)
	if err != nil {
		return Context{}, err
	}

	sha, err := local.HeadSHA()
	if err != nil {
		return Context{}, err
	}

	owner, name, err := local.OwnerRepo()
	if err != nil {
		return Context{}, err
	}

	return Context{Owner: owner, Repo: name, SHA: sha}, nil
}

// IssueNumberFromEvent returns the issue number of an event payload. The
// number is taken from the issue, then the pull request, then the payload
// itself; 0 when none is present.
func IssueNumberFromEvent(event map[string]any) int {
	if event == nil {
		return 0
	}
	for _, key := range []string{"issue", "pull_request"} {
		if obj, ok := event[key].(map[string]any); ok {
			if n := number(obj["number"]); n > 0 {
				return n
			}
		}
	}
	return number(event["number"])
}

// number converts a decoded JSON number to int.
func number(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}
