package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cranky",
	Short: "A grumpy Leitner-box language tutor",
	Long: "cranky drills phrases in a foreign language with a five-box Leitner system.\n" +
		"It keeps about thirty phrases in rotation and invents new ones with an LLM when you run low.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the CLI with ctx, cancelled on interrupt by main.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides CRANKY_DB env var)")
	flags.String("config", "", "Path to YAML config file (default $XDG_CONFIG_HOME/cranky/config.yaml)")
	flags.StringP("learner", "l", "", "Learner to drill (default: the only registered learner)")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(incorrectCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(learnerCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
