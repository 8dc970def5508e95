package chunker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agroguide/agroguide/internal/domain"
)

// WriteChunks persists the chunk set as a UTF-8 JSON array. Array order is
// semantically significant: it defines the ordinal join with the vector
// index built from it.
func WriteChunks(path string, chunks []domain.Chunk) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chunks dir: %w", err)
	}
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write chunks file: %w", err)
	}
	return nil
}

// ReadChunks loads a chunk artifact written by WriteChunks.
func ReadChunks(path string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunks file %s: %w", path, err)
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("invalid chunks JSON %s: %w", path, err)
	}
	return chunks, nil
}
