package flashcard

import "strings"

const keyValueSeparator = ": "

// Parse builds a flashcard from generated text made of "Key: Value" lines.
// Lines without the separator and unknown keys are ignored, a later line for the
// same key wins, and keys that never appear stay empty.
func Parse(text string) Flashcard {
	var card Flashcard
	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, keyValueSeparator)
		if !found {
			continue
		}
		card.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return card
}
