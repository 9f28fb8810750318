package cli

import (
	"context"
	"errors"
	"strconv"
	"unicode"

	"github.com/at-ishikawa/wortkarte/internal/quiz"
)

// Quiz asks one multiple-choice question about a random saved card.
func (cli *FlashcardCLI) Quiz(ctx context.Context) error {
	question, err := quiz.New(cli.store.Cards(), cli.rng).NewQuestion()
	if errors.Is(err, quiz.ErrNoFlashcards) {
		cli.println("No flashcards available yet. Please add some words first.")
		return nil
	}
	if err != nil {
		return err
	}

	card := question.Card
	cli.println("\n--- QUIZ ---")
	cli.printf("German word: %s\n", cli.bold.Sprint(card.Word))
	cli.printf("German sentence: %s\n", cli.italic.Sprint(card.ExampleSentence))
	cli.println("What is the correct English translation?")
	for i, option := range question.Options {
		cli.printf("%d. %s\n", i+1, option)
	}

	answer, err := cli.prompt("Enter the number of your choice: ")
	if err != nil {
		return err
	}

	choice, ok := parseChoice(answer)
	if !ok {
		cli.println("Invalid choice.")
		return nil
	}
	isCorrect, err := question.Answer(choice)
	if err != nil {
		cli.println("Invalid choice.")
		return nil
	}

	if isCorrect {
		_, _ = cli.correct.Fprintln(cli.stdoutWriter, "Correct!")
	} else {
		_, _ = cli.wrong.Fprintf(cli.stdoutWriter, "Wrong. The correct answer was: %s\n", card.EnglishTranslation)
	}
	cli.printf("German explanation: %s\n", card.GermanExplanation)
	return nil
}

// parseChoice accepts only unsigned decimal digits.
func parseChoice(answer string) (int, bool) {
	if answer == "" {
		return 0, false
	}
	for _, r := range answer {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return 0, false
		}
	}
	choice, err := strconv.Atoi(answer)
	if err != nil {
		return 0, false
	}
	return choice, true
}
