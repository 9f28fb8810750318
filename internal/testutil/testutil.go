// Package testutil provides shared test helpers for creating config files and flashcard fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/at-ishikawa/wortkarte/internal/flashcard"
	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a config file whose flashcards, cache and output paths all live in tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"templates", "outputs", "cache"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`flashcards:
  file: %s
generator:
  provider: openai
  cache_directory: %s
templates:
  markdown_directory: %s
outputs:
  directory: %s
`,
		FlashcardsFile(tmpDir),
		filepath.Join(tmpDir, "cache"),
		filepath.Join(tmpDir, "templates"),
		filepath.Join(tmpDir, "outputs"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// FlashcardsFile is the flashcards file SetupTestConfig points at.
func FlashcardsFile(tmpDir string) string {
	return filepath.Join(tmpDir, "flashcards.csv")
}

// CreateFlashcardsFile writes cards to the flashcards file under tmpDir.
func CreateFlashcardsFile(t *testing.T, tmpDir string, cards ...flashcard.Flashcard) string {
	t.Helper()

	path := FlashcardsFile(tmpDir)
	store := flashcard.NewStore(path)
	for _, card := range cards {
		store.Append(card)
	}
	require.NoError(t, store.Save())
	return path
}

// CacheResponse stores a generated response so that adding word needs no network access.
func CacheResponse(t *testing.T, tmpDir, word, response string) {
	t.Helper()

	path := filepath.Join(tmpDir, "cache", word+".txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(response), 0644))
}
