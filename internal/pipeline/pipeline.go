// Package pipeline turns an issue into a branch and a draft pull request.
//
// The run is strictly sequential: fetch the issue, derive the branch name,
// create the ref, open the pull request. Each step runs only if the previous
// one succeeded and the first error ends the run with its original message.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alanmeadows/issuepr/internal/branch"
	"github.com/alanmeadows/issuepr/internal/provider"
	"github.com/alanmeadows/issuepr/internal/trigger"
)

// BaseBranch is the branch pull requests are opened against.
const BaseBranch = "master"

// ErrNoAssignee is returned when the issue has nobody assigned to it.
var ErrNoAssignee = errors.New("issue has no assignee")

// Result describes what a run fetched and created.
type Result struct {
	Issue       *provider.Issue
	Branch      string
	Ref         *provider.Ref
	PullRequest *provider.PullRequest
}

// Plan is what a run would create for an issue.
type Plan struct {
	Issue       *provider.Issue
	Branch      string
	Ref         string
	PullRequest provider.NewPullRequest
}

// Pipeline runs the issue → branch → pull request sequence.
type Pipeline struct {
	backend provider.Backend
}

// New creates a Pipeline. Branches are named by branch.Name and pull
// requests are always drafts against BaseBranch.
func New(backend provider.Backend) *Pipeline {
	return &Pipeline{backend: backend}
}

// Plan fetches the issue and derives everything a Run would create, without
// creating anything.
func (p *Pipeline) Plan(ctx context.Context, tc trigger.Context) (*Plan, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	issue, err := p.backend.GetIssue(ctx, tc.Owner, tc.Repo, tc.IssueNumber)
	if err != nil {
		return nil, err
	}
	slog.Info("fetched issue", "number", issue.Number, "title", issue.Title, "assignee", issue.Assignee)

	if issue.Assignee == "" {
		return nil, fmt.Errorf("%w: #%d", ErrNoAssignee, issue.Number)
	}

	name := branch.Name(issue.Number, issue.Title)

	return &Plan{
		Issue:  issue,
		Branch: name,
		Ref:    branch.RefName(name),
		PullRequest: provider.NewPullRequest{
			Owner: issue.Assignee,
			Repo:  tc.Repo,
			Head:  name,
			Base:  BaseBranch,
			Title: issue.Title,
			Body:  ClosingBody(issue.Number),
			Draft: true,
		},
	}, nil
}

// Run creates the branch at the trigger commit and opens the pull request.
func (p *Pipeline) Run(ctx context.Context, tc trigger.Context) (*Result, error) {
	plan, err := p.Plan(ctx, tc)
	if err != nil {
		return nil, err
	}

	result := &Result{Issue: plan.Issue, Branch: plan.Branch}

	slog.Info("creating branch", "branch", plan.Branch, "sha", tc.SHA)
	ref, err := p.backend.CreateRef(ctx, tc.Owner, tc.Repo, plan.Ref, tc.SHA)
	if err != nil {
		return result, err
	}
	result.Ref = ref

	slog.Info("creating pull request", "branch", plan.Branch, "base", plan.PullRequest.Base)
	pr, err := p.backend.CreatePullRequest(ctx, plan.PullRequest)
	if err != nil {
		return result, err
	}
	result.PullRequest = pr

	slog.Info("opened pull request", "number", pr.Number, "url", pr.URL)
	return result, nil
}

// ClosingBody returns the pull request body that closes issue number.
func ClosingBody(number int) string {
	return fmt.Sprintf("Closes #%d.", number)
}
