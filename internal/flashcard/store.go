package flashcard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store is the in-memory copy of the backing CSV file.
// Save rewrites the whole file.
type Store struct {
	path  string
	cards []Flashcard
}

// NewStore returns an empty store that saves to path.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		cards: make([]Flashcard, 0),
	}
}

// Load reads the CSV file at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewStore(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	cards, err := readCards(file)
	if err != nil {
		return nil, fmt.Errorf("readCards(%s) > %w", path, err)
	}
	return &Store{
		path:  path,
		cards: cards,
	}, nil
}

func readCards(r io.Reader) ([]Flashcard, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return make([]Flashcard, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header > %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	cards := make([]Flashcard, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row > %w", err)
		}

		var card Flashcard
		for i, value := range record {
			if i >= len(header) {
				break
			}
			card.set(header[i], value)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Path returns the backing file path.
func (store *Store) Path() string {
	return store.path
}

// Len returns the number of cards.
func (store *Store) Len() int {
	return len(store.cards)
}

// Cards returns a copy of the cards in append order.
func (store *Store) Cards() []Flashcard {
	cards := make([]Flashcard, len(store.cards))
	copy(cards, store.cards)
	return cards
}

// Exists reports whether a card with the word exists, ignoring case.
func (store *Store) Exists(word string) bool {
	word = strings.ToLower(word)
	for _, card := range store.cards {
		if strings.ToLower(card.Word) == word {
			return true
		}
	}
	return false
}

// Append adds a card to the in-memory set without saving it.
func (store *Store) Append(card Flashcard) {
	store.cards = append(store.cards, card)
}

// Add appends a card and saves the store.
func (store *Store) Add(card Flashcard) error {
	store.Append(card)
	if err := store.Save(); err != nil {
		return fmt.Errorf("store.Save() > %w", err)
	}
	return nil
}

// Save overwrites the backing file with the header and every card.
func (store *Store) Save() error {
	if dir := filepath.Dir(store.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	file, err := os.Create(store.path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", store.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := writeCards(file, store.cards); err != nil {
		return fmt.Errorf("writeCards(%s) > %w", store.path, err)
	}
	return file.Close()
}

func writeCards(w io.Writer, cards []Flashcard) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write header > %w", err)
	}
	for _, card := range cards {
		if err := writer.Write(card.record()); err != nil {
			return fmt.Errorf("write row %q > %w", card.Word, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Duplicates groups cards whose words are equal ignoring case.
// Only words that occur more than once are returned, keyed by the lower-cased word.
func (store *Store) Duplicates() map[string][]Flashcard {
	groups := make(map[string][]Flashcard)
	for _, card := range store.cards {
		key := strings.ToLower(card.Word)
		groups[key] = append(groups[key], card)
	}
	for key, cards := range groups {
		if len(cards) < 2 {
			delete(groups, key)
		}
	}
	return groups
}
