package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.close()

		owner, err := e.learnerName(ctx, cmd)
		if err != nil {
			return err
		}
		reviews, err := e.store.EventRepo().QueryReviews(ctx, store.QueryOpts{Owner: owner, Limit: limit})
		if err != nil {
			return fmt.Errorf("query reviews: %w", err)
		}
		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}

		phrases := e.store.PhraseRepo()
		fmt.Printf("%-19s  %-2s  %-5s  %s\n", "Timestamp", "OK", "Stage", "Phrase")
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range reviews {
			text := r.PhraseID
			if p, err := phrases.GetPhrase(ctx, owner, r.PhraseID); err == nil && p != nil {
				text = p.Text
			}
			ok := "✓"
			if !r.Correct {
				ok = "✗"
			}
			move := fmt.Sprintf("%d→%d", r.FromStage, r.ToStage)
			if r.Mastered {
				move += "★"
			}
			fmt.Printf("%-19s  %-2s  %-5s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"), ok, move, truncate(text, 40))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of reviews to show")
}
