package main

import (
	"github.com/spf13/cobra"
)

func newQuizCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Answer one multiple-choice question from saved flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flashcardCLI, closeGenerator, err := newFlashcardCLI()
			if err != nil {
				return err
			}
			defer closeGenerator()

			return flashcardCLI.Quiz(cmd.Context())
		},
	}
}
