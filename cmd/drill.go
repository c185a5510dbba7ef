package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/ui/components"
	"github.com/imhonza/cranky-language-tutor/internal/voice"
)

// explain prefixes scheduler errors with the tutor's line.
func explain(err error) error {
	return fmt.Errorf("%s\n%w", voice.ForError(err), err)
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next phrase to drill",
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
		p, err := tutor.NextItem(ctx)
		if err != nil {
			return explain(err)
		}

		fmt.Printf("ID:          %s\n", p.ID)
		fmt.Printf("Stage:       %s\n", p.Stage)
		fmt.Printf("Phrase:      %s\n", p.Text)
		if p.Translation != "" {
			fmt.Printf("Translation: %s\n", p.Translation)
		}
		return nil
	},
}

var correctCmd = &cobra.Command{
	Use:   "correct <id>",
	Short: "Record a correct answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordAnswer(cmd, args[0], true)
	},
}

var incorrectCmd = &cobra.Command{
	Use:   "incorrect <id>",
	Short: "Record a wrong answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordAnswer(cmd, args[0], false)
	},
}

func recordAnswer(cmd *cobra.Command, id string, correct bool) error {
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
	line, err := grade(ctx, tutor, id, correct)
	if err != nil {
		return explain(err)
	}
	fmt.Println(line)
	return nil
}

// answerer is the part of the scheduler grading needs.
type answerer interface {
	Phrase(ctx context.Context, id string) (*phrase.Phrase, error)
	RecordCorrect(ctx context.Context, id string) (leitner.Outcome, error)
	RecordIncorrect(ctx context.Context, id string) error
}

// grade records an answer and returns the tutor's reply. Mastered phrases
// come up for review only; they stay mastered and nothing is recorded.
func grade(ctx context.Context, t answerer, id string, correct bool) (string, error) {
	p, err := t.Phrase(ctx, id)
	if err != nil {
		return "", err
	}
	if p != nil && p.Stage == phrase.StageMastered {
		return voice.ForReview(correct), nil
	}

	if !correct {
		if err := t.RecordIncorrect(ctx, id); err != nil {
			return "", err
		}
		return voice.Incorrect, nil
	}
	outcome, err := t.RecordCorrect(ctx, id)
	if err != nil {
		return "", err
	}
	if outcome == leitner.OutcomeMastered {
		return voice.Mastered, nil
	}
	return voice.Correct, nil
}

var addCmd = &cobra.Command{
	Use:   "add <phrase> [= translation]",
	Short: "Add a phrase to your backlog",
	Long: "Add a phrase to your backlog. Everything after \"=\" is taken as the translation;\n" +
		"without one the phrase is translated automatically when an LLM is configured.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text, translation := components.SplitPhrase(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("%s", voice.AskPhrase)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.close()

		tutor, err := e.tutor(ctx, cmd)
		if err != nil {
			return explain(err)
		}
		p, err := tutor.AddPhrase(ctx, text, translation)
		if err != nil {
			return explain(err)
		}

		fmt.Println(voice.Added)
		fmt.Printf("%s  %s", p.ID, p.Text)
		if p.Translation != "" {
			fmt.Printf(" = %s", p.Translation)
		}
		fmt.Println()
		return nil
	},
}
