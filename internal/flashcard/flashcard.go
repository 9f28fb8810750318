// Package flashcard holds the vocabulary card model, the CSV backed store and
// the parser for generated flashcard text.
package flashcard

const (
	ColumnWord               = "Word"
	ColumnGermanExplanation  = "German explanation"
	ColumnEnglishTranslation = "English translation"
	ColumnExampleSentence    = "Example sentence"
)

// Columns is the fixed header of the backing file, in file order.
var Columns = []string{
	ColumnWord,
	ColumnGermanExplanation,
	ColumnEnglishTranslation,
	ColumnExampleSentence,
}

// Flashcard is one vocabulary entry.
type Flashcard struct {
	Word               string `yaml:"word"`
	GermanExplanation  string `yaml:"german_explanation"`
	EnglishTranslation string `yaml:"english_translation"`
	ExampleSentence    string `yaml:"example_sentence"`
}

func (card Flashcard) record() []string {
	return []string{
		card.Word,
		card.GermanExplanation,
		card.EnglishTranslation,
		card.ExampleSentence,
	}
}

// set assigns a value to the field for a known column name.
// Unknown columns are ignored.
func (card *Flashcard) set(column, value string) {
	switch column {
	case ColumnWord:
		card.Word = value
	case ColumnGermanExplanation:
		card.GermanExplanation = value
	case ColumnEnglishTranslation:
		card.EnglishTranslation = value
	case ColumnExampleSentence:
		card.ExampleSentence = value
	}
}

// MissingFields returns the column names whose values are empty.
func (card Flashcard) MissingFields() []string {
	var missing []string
	for i, value := range card.record() {
		if value == "" {
			missing = append(missing, Columns[i])
		}
	}
	return missing
}
