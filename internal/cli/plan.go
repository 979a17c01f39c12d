package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuepr/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the branch and pull request a run would create",
	Long: `Fetch the issue and print the branch, ref and pull request that
issuepr run would create. Nothing is created.`,
	Example: `  issuepr plan --issue 42
  issuepr plan --repo octo-org/widgets --sha 6dcb09b --issue 42`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		action := githubactions.New(githubactions.WithWriter(cmd.ErrOrStderr()))

		tc, err := loadTrigger(action, appConfig)
		if err != nil {
			return err
		}
		p, err := newPipeline(action, appConfig, tc)
		if err != nil {
			return err
		}

		plan, err := p.Plan(cmd.Context(), tc)
		if err != nil {
			return err
		}

		printPlan(cmd.OutOrStdout(), tc.SHA, plan)
		return nil
	},
}

func init() {
	addTriggerFlags(planCmd)
}

func printPlan(w io.Writer, sha string, plan *pipeline.Plan) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	pr := plan.PullRequest
	rows := [][]string{
		{"Issue", fmt.Sprintf("#%d %s", plan.Issue.Number, plan.Issue.Title)},
		{"Assignee", plan.Issue.Assignee},
		{"Branch", plan.Branch},
		{"Ref", plan.Ref},
		{"Commit", sha},
		{"Repository", pr.Owner + "/" + pr.Repo},
		{"Base", pr.Base},
		{"Draft", strconv.FormatBool(pr.Draft)},
		{"Body", pr.Body},
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FIELD", "VALUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t)
}
