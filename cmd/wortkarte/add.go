package main

import (
	"github.com/spf13/cobra"
)

func newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <word>...",
		Short: "Generate and save flashcards for German words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flashcardCLI, closeGenerator, err := newFlashcardCLI()
			if err != nil {
				return err
			}
			defer closeGenerator()

			for _, word := range args {
				if err := flashcardCLI.AddWord(cmd.Context(), word); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
