// Package quiz builds multiple-choice translation questions from saved flashcards.
package quiz

import (
	"errors"
	"math/rand"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
)

// OptionCount is the number of options in a question: the correct translation plus two distractors.
const OptionCount = 3

var (
	ErrNoFlashcards  = errors.New("no flashcards available")
	ErrInvalidChoice = errors.New("invalid choice")
)

type Quiz struct {
	cards []flashcard.Flashcard
	rng   *rand.Rand
}

func New(cards []flashcard.Flashcard, rng *rand.Rand) *Quiz {
	return &Quiz{
		cards: cards,
		rng:   rng,
	}
}

// Pick returns a uniformly sampled card.
func (q *Quiz) Pick() (flashcard.Flashcard, error) {
	if len(q.cards) == 0 {
		return flashcard.Flashcard{}, ErrNoFlashcards
	}
	return q.cards[q.rng.Intn(len(q.cards))], nil
}

// Distractors returns two wrong translations sampled without replacement from the
// distinct translations other than correct. With fewer than two candidates both
// distractors are the correct translation itself.
func (q *Quiz) Distractors(correct string) []string {
	candidates := q.alternativeTranslations(correct)
	if len(candidates) < OptionCount-1 {
		return []string{correct, correct}
	}

	q.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:OptionCount-1]
}

// alternativeTranslations returns the distinct translations not equal to correct, in card order.
func (q *Quiz) alternativeTranslations(correct string) []string {
	seen := make(map[string]bool)
	var translations []string
	for _, card := range q.cards {
		translation := card.EnglishTranslation
		if translation == correct || seen[translation] {
			continue
		}
		seen[translation] = true
		translations = append(translations, translation)
	}
	return translations
}

// Question is one multiple-choice question about a card.
type Question struct {
	Card    flashcard.Flashcard
	Options []string
}

// NewQuestion picks a card and shuffles its translation together with two distractors.
func (q *Quiz) NewQuestion() (Question, error) {
	card, err := q.Pick()
	if err != nil {
		return Question{}, err
	}

	options := append([]string{card.EnglishTranslation}, q.Distractors(card.EnglishTranslation)...)
	q.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		Card:    card,
		Options: options,
	}, nil
}

// Answer reports whether the 1-based choice selects the correct translation.
func (question Question) Answer(choice int) (bool, error) {
	if choice < 1 || choice > len(question.Options) {
		return false, ErrInvalidChoice
	}
	return question.Options[choice-1] == question.Card.EnglishTranslation, nil
}
