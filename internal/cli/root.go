package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"github.com/alanmeadows/issuepr/internal/config"
	"github.com/alanmeadows/issuepr/internal/logging"
)

var (
	verbose    bool
	logFormat  string
	configPath string
	appConfig  *config.Config

	rootCmd = &cobra.Command{
		Use:   "issuepr",
		Short: "Open a branch and draft pull request for a GitHub issue",
		Long: `issuepr derives a branch name from an issue, creates the branch at the
triggering commit, and opens a draft pull request that closes the issue.

Inside GitHub Actions, running issuepr without a subcommand is the same as
issuepr run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return annotate(cmd, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("GITHUB_ACTIONS") == "true" {
				return runCmd.RunE(cmd, args)
			}
			return cmd.Help()
		},
	}
)

// setup configures logging and loads the merged config.
func setup() error {
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return err
	}
	logging.Setup(verbose, format)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	appConfig = cfg
	return nil
}

// annotate reports err as a workflow error annotation when running inside
// GitHub Actions. Outside Actions the error is returned unchanged.
func annotate(cmd *cobra.Command, err error) error {
	if os.Getenv("GITHUB_ACTIONS") != "true" {
		return err
	}
	githubactions.New(githubactions.WithWriter(cmd.OutOrStdout())).Errorf("%s", err.Error())
	return &reportedError{err: err}
}

// reportedError is a failure that was already surfaced as a workflow
// annotation and must not be printed again.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "Log format: auto, text, json or logfmt")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an additional JSONC or YAML config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(branchNameCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Errors not yet reported are printed to
// stderr; the caller only has to pick the exit code.
func Execute() error {
	err := rootCmd.Execute()
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
