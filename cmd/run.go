package cmd

import (
	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/app"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start the interactive drill",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds the learner's scheduler and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()

	tutor, err := e.tutor(ctx, cmd)
	if err != nil {
		return explain(err)
	}
	return app.Run(ctx, tutor, e.store.EventRepo())
}
