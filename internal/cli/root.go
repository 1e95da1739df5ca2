package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "dagplan",
	Short: "dagplan - smart time-blocking day planner",
	Long: `dagplan is a personal day planner that turns a backlog of activities into
a time-blocked schedule.

It scores pending activities with a multi-factor priority model, computes the
free windows around committed calendar blocks, and greedily places the most
important work first, inserting recovery breaks along the way. A flow advisor
recommends when to protect focus time and which kinds of work fit the current
hour.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dagplan %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
