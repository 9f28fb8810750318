package main

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all saved flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}
			printFlashcards(cmd.OutOrStdout(), store.Cards())
			return nil
		},
	}
}

func printFlashcards(w io.Writer, cards []flashcard.Flashcard) {
	if len(cards) == 0 {
		_, _ = fmt.Fprintln(w, "No flashcards available yet. Please add some words first.")
		return
	}

	bold := color.New(color.Bold)
	italic := color.New(color.Italic)
	for i, card := range cards {
		_, _ = bold.Fprintf(w, "%d. %s", i+1, card.Word)
		_, _ = fmt.Fprintf(w, " (%s)\n", card.EnglishTranslation)
		_, _ = fmt.Fprintf(w, "   %s\n", card.GermanExplanation)
		if card.ExampleSentence != "" {
			_, _ = fmt.Fprint(w, "   ")
			_, _ = italic.Fprintln(w, card.ExampleSentence)
		}
	}
	_, _ = fmt.Fprintf(w, "\n%d flashcard(s)\n", len(cards))
}
