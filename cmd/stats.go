package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.close()

		tutor, err := e.tutor(ctx, cmd)
		if err != nil {
			return explain(err)
		}
		st, err := tutor.Stats(ctx)
		if err != nil {
			return fmt.Errorf("compute stats: %w", err)
		}

		fmt.Printf("Learner:      %s (%s)\n", tutor.Owner(), tutor.Language())
		fmt.Printf("Phrases:      %d\n", st.Total)
		fmt.Printf("Practiced:    %d\n", st.Practiced)
		fmt.Printf("Mastered:     %d\n", st.Mastered)
		fmt.Printf("In rotation:  %d\n", tutor.ActiveCount())
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the active phrases by Leitner stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.close()

		tutor, err := e.tutor(ctx, cmd)
		if err != nil {
			return explain(err)
		}
		fmt.Print(renderReport(tutor.Report()))
		return nil
	},
}

// renderReport lays out one lipgloss column per stage. Phrases with a
// mistake are red, phrases answered right at least once are green.
func renderReport(r leitner.Report) string {
	if r.Total() == 0 {
		return "Nothing in rotation yet.\n"
	}

	columns := make([]string, 0, len(r.Stages))
	for _, st := range r.Stages {
		var b strings.Builder
		b.WriteString(theme.StageBadge(st.Stage))
		b.WriteString(theme.Hint.Render(fmt.Sprintf(" %d", len(st.Entries))))
		b.WriteString("\n")
		for _, e := range st.Entries {
			style := theme.Body
			switch {
			case e.HasMistakes:
				style = theme.Incorrect
			case e.HasCorrect:
				style = theme.Correct
			}
			b.WriteString(style.Render(e.Text))
			b.WriteString("\n")
		}
		columns = append(columns, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.StageColor(st.Stage)).
			Padding(0, 1).
			Width(28).
			Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n"
}
