package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuepr/internal/config"
	"github.com/alanmeadows/issuepr/internal/pipeline"
	ghbackend "github.com/alanmeadows/issuepr/internal/provider/github"
	"github.com/alanmeadows/issuepr/internal/trigger"
)

// Action outputs set after a successful run.
const (
	outputBranch            = "branch"
	outputPullRequestNumber = "pull_request_number"
	outputPullRequestURL    = "pull_request_url"
)

// tokenInput is the action input carrying the API credential.
const tokenInput = "github_token"

var (
	triggerOverrides trigger.Overrides
	repoDir          string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Create the issue branch and open a draft pull request",
	Long: `Fetch the triggering issue, create issue/<number>-<short-title> at the
triggering commit and open a draft pull request that closes the issue.

Inside GitHub Actions the repository, commit and issue come from the
workflow environment. Locally they come from the git checkout and flags.
On failure the error is reported as a workflow error annotation and the
process exits with status 1.`,
	Example: `  issuepr run
  issuepr run --issue 42
  issuepr run --repo octo-org/widgets --sha 6dcb09b --issue 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		action := githubactions.New(githubactions.WithWriter(cmd.OutOrStdout()))
		return runAction(cmd.Context(), action, appConfig)
	},
}

func init() {
	addTriggerFlags(runCmd)
}

// addTriggerFlags registers the flags that override the trigger context.
func addTriggerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&triggerOverrides.Repository, "repo", "", "Repository as owner/name")
	cmd.Flags().StringVar(&triggerOverrides.SHA, "sha", "", "Commit to create the branch at")
	cmd.Flags().IntVar(&triggerOverrides.Issue, "issue", 0, "Issue number")
	cmd.Flags().StringVar(&triggerOverrides.APIURL, "api-url", "", "GitHub REST API URL")
	cmd.Flags().StringVar(&repoDir, "dir", ".", "Local checkout used outside GitHub Actions")
}

// runAction runs the pipeline and reports the outcome through the action:
// outputs and a step summary on success, an error annotation on failure.
func runAction(ctx context.Context, action *githubactions.Action, cfg *config.Config) error {
	result, err := execute(ctx, action, cfg)
	if err != nil {
		action.Errorf("%s", err.Error())
		return &reportedError{err: err}
	}

	action.SetOutput(outputBranch, result.Branch)
	action.SetOutput(outputPullRequestNumber, strconv.Itoa(result.PullRequest.Number))
	action.SetOutput(outputPullRequestURL, result.PullRequest.URL)
	action.AddStepSummary(stepSummary(result))
	action.Infof("Opened draft pull request #%d for issue #%d: %s\n",
		result.PullRequest.Number, result.Issue.Number, result.PullRequest.URL)

	return nil
}

func execute(ctx context.Context, action *githubactions.Action, cfg *config.Config) (*pipeline.Result, error) {
	tc, err := loadTrigger(action, cfg)
	if err != nil {
		return nil, err
	}

	p, err := newPipeline(action, cfg, tc)
	if err != nil {
		return nil, err
	}

	return p.Run(ctx, tc)
}

// loadTrigger reads the trigger context from the Actions environment, or
// from the local checkout outside Actions, then applies flag overrides.
func loadTrigger(action *githubactions.Action, cfg *config.Config) (trigger.Context, error) {
	var (
		tc  trigger.Context
		err error
	)
	if action.Getenv("GITHUB_ACTIONS") == "true" {
		tc, err = trigger.FromAction(action)
	} else {
		tc, err = trigger.FromRepository(repoDir)
	}
	if err != nil && triggerOverrides.Repository == "" {
		return trigger.Context{}, err
	}
	if err != nil {
		slog.Debug("no local trigger context, using flags only", "error", err)
	}

	if tc.APIURL == "" {
		tc.APIURL = cfg.GitHub.APIURL
	}

	tc, err = tc.Apply(triggerOverrides)
	if err != nil {
		return trigger.Context{}, err
	}
	return tc, tc.Validate()
}

// newPipeline builds the GitHub backend and pipeline for a trigger.
func newPipeline(action *githubactions.Action, cfg *config.Config, tc trigger.Context) (*pipeline.Pipeline, error) {
	token := resolveToken(action, cfg)
	if token == "" {
		return nil, errors.New("no GitHub token: set the github_token input or GITHUB_TOKEN")
	}

	opts := []ghbackend.Option{ghbackend.WithRateLimitWait(cfg.GitHub.WaitOnRateLimit)}
	if tc.APIURL != "" {
		opts = append(opts, ghbackend.WithBaseURL(tc.APIURL))
	}
	backend, err := ghbackend.NewBackend(token, opts...)
	if err != nil {
		return nil, err
	}

	return pipeline.New(backend), nil
}

// resolveToken returns the github_token input, falling back to the
// configured token (which includes GITHUB_TOKEN).
func resolveToken(action *githubactions.Action, cfg *config.Config) string {
	if token := strings.TrimSpace(action.GetInput(tokenInput)); token != "" {
		return token
	}
	if cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}

func stepSummary(r *pipeline.Result) string {
	var sb strings.Builder
	sb.WriteString("### Draft pull request opened\n\n")
	sb.WriteString("| Issue | Branch | Pull request |\n")
	sb.WriteString("| --- | --- | --- |\n")
	fmt.Fprintf(&sb, "| #%d %s | `%s` | [#%d](%s) |\n",
		r.Issue.Number, strings.ReplaceAll(r.Issue.Title, "|", `\|`),
		r.Branch, r.PullRequest.Number, r.PullRequest.URL)
	return sb.String()
}
