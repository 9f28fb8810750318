package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/at-ishikawa/wortkarte/internal/inference"
)

// AddWord generates a flashcard for word and saves it unless the word is already stored.
// Generator and file errors are returned; input problems are only reported.
// An empty model response is saved as an empty card.
func (cli *FlashcardCLI) AddWord(ctx context.Context, word string) error {
	if word == "" {
		cli.println("Please enter a valid word.")
		return nil
	}
	if cli.store.Exists(word) {
		cli.printf("The word '%s' is already in your flashcards list.\n", word)
		return nil
	}

	text, err := cli.generator.GenerateFlashcard(ctx, word)
	if err != nil {
		if !errors.Is(err, inference.ErrEmptyResponse) {
			return fmt.Errorf("generator.GenerateFlashcard(%s) > %w", word, err)
		}
		slog.Default().Debug("generator returned an empty response",
			"word", word,
			"error", err,
		)
		text = ""
	}

	cli.printf("\nGenerated Flashcard:\n\n")
	cli.println(text)

	return cli.saveFlashcard(text)
}

func (cli *FlashcardCLI) saveFlashcard(text string) error {
	card := flashcard.Parse(text)
	if missing := card.MissingFields(); len(missing) > 0 {
		slog.Default().Debug("generated flashcard is incomplete",
			"word", card.Word,
			"missing", missing,
		)
	}

	if err := cli.store.Add(card); err != nil {
		return fmt.Errorf("store.Add(%s) > %w", card.Word, err)
	}
	cli.printf("Flashcard for '%s' saved to %s.\n", cli.bold.Sprint(card.Word), cli.store.Path())
	return nil
}
