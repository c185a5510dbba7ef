package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/learner"
)

var learnerCmd = &cobra.Command{
	Use:   "learner",
	Short: "Manage learners",
}

var learnerAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a learner, or change their language and level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.close()

		language, _ := cmd.Flags().GetString("language")
		if language == "" {
			language = e.cfg.DefaultLanguage
		}
		levelName, _ := cmd.Flags().GetString("level")
		if levelName == "" {
			levelName = e.cfg.DefaultLevel
		}
		level, err := learner.ParseLevel(levelName)
		if err != nil {
			return err
		}

		l, err := learner.New(args[0], language, level, time.Now())
		if err != nil {
			return err
		}
		if err := e.store.LearnerRepo().Save(ctx, l); err != nil {
			return err
		}
		fmt.Printf("%s is learning %s at %s. Good luck, you'll need it.\n", l.Name, l.Language, l.Level)
		return nil
	},
}

var learnerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.close()

		learners, err := e.store.LearnerRepo().List(ctx)
		if err != nil {
			return err
		}
		if len(learners) == 0 {
			fmt.Println("No learners registered.")
			return nil
		}

		fmt.Printf("%-20s  %-14s  %-5s  %s\n", "Name", "Language", "Level", "Since")
		fmt.Println(strings.Repeat("─", 56))
		for _, l := range learners {
			fmt.Printf("%-20s  %-14s  %-5s  %s\n",
				truncate(l.Name, 20), truncate(l.Language, 14), l.Level,
				l.CreatedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	learnerAddCmd.Flags().String("language", "", "Target language (default from config)")
	learnerAddCmd.Flags().String("level", "", "CEFR level A1-C2 (default from config)")

	learnerCmd.AddCommand(learnerAddCmd)
	learnerCmd.AddCommand(learnerListCmd)
}
