package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuepr/internal/branch"
)

var branchNameCmd = &cobra.Command{
	Use:   "branch-name <number> <title...>",
	Short: "Print the branch name for an issue",
	Long: `Print the branch name issuepr derives from an issue number and title.
No API calls are made.`,
	Example: `  issuepr branch-name 42 "Add Dark Mode Support"
  issuepr branch-name 7 Fix the parser crash`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil || number <= 0 {
			return fmt.Errorf("invalid issue number %q", args[0])
		}
		title := strings.Join(args[1:], " ")

		fmt.Fprintln(cmd.OutOrStdout(), branch.Name(number, title))
		return nil
	},
}
