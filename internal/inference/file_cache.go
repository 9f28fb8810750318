package inference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileCache wraps a Client and keeps each generated response on disk,
// one file per lower-cased word.
type FileCache struct {
	rootDir string
	client  Client
}

func NewFileCache(cacheDirectory string, client Client) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
		client:  client,
	}
}

func (cache *FileCache) filePath(word string) string {
	name := strings.ToLower(strings.TrimSpace(word))
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	return filepath.Join(cache.rootDir, name+".txt")
}

// GenerateFlashcard replays a cached response if one exists and asks the wrapped client otherwise.
// Cache read and write failures are logged and never fail the generation.
func (cache *FileCache) GenerateFlashcard(ctx context.Context, word string) (string, error) {
	contents, err := cache.read(word)
	if err == nil {
		slog.Default().Debug("flashcard cache hit",
			"word", word,
			"path", cache.filePath(word),
		)
		return contents, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("failed to read the flashcard cache",
			"word", word,
			"path", cache.filePath(word),
			"error", err,
		)
	}

	contents, err = cache.client.GenerateFlashcard(ctx, word)
	if err != nil {
		return "", err
	}
	if err := cache.write(word, contents); err != nil {
		slog.Default().Warn("failed to write the flashcard cache",
			"word", word,
			"path", cache.filePath(word),
			"error", err,
		)
	}
	return contents, nil
}

func (cache *FileCache) read(word string) (string, error) {
	file, err := os.Open(cache.filePath(word))
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll > %w", err)
	}
	return string(contents), nil
}

func (cache *FileCache) write(word, contents string) error {
	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}

	file, err := os.Create(cache.filePath(word))
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.WriteString(contents); err != nil {
		return fmt.Errorf("file.Write > %w", err)
	}
	return nil
}
