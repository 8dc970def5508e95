package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agroguide/agroguide/internal/domain"
)

// Load reads an indexed corpus from dir and verifies the index↔metadata
// invariant: row count and vector file size must agree with the manifest.
// Any missing or corrupt artifact fails the load; a retriever must never
// serve queries from a half-loaded corpus.
func Load(dir string) (*Corpus, error) {
	manifestPath := filepath.Join(dir, ManifestFile)
	mb, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read manifest %s: %w", domain.ErrArtifactMissing, manifestPath, err)
	}
	var m Manifest
	if err := json.Unmarshal(mb, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON %s: %w", manifestPath, err)
	}
	if m.Dim <= 0 {
		return nil, fmt.Errorf("%w: invalid dim in manifest: %d", domain.ErrCorpusMismatch, m.Dim)
	}
	if m.VectorFile == "" {
		m.VectorFile = VectorFile
	}
	if m.MetadataFile == "" {
		m.MetadataFile = MetadataFile
	}

	chunks, err := loadMetadata(filepath.Join(dir, m.MetadataFile))
	if err != nil {
		return nil, err
	}
	if m.Rows != 0 && m.Rows != len(chunks) {
		return nil, fmt.Errorf("%w: manifest rows=%d, metadata rows=%d",
			domain.ErrCorpusMismatch, m.Rows, len(chunks))
	}

	vectors, err := loadVectors(filepath.Join(dir, m.VectorFile), len(chunks), m.Dim)
	if err != nil {
		return nil, err
	}

	m.Rows = len(chunks)
	return &Corpus{Manifest: m, Chunks: chunks, Vectors: vectors}, nil
}

func loadMetadata(path string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read metadata %s: %w", domain.ErrArtifactMissing, path, err)
	}
	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("invalid metadata JSON %s: %w", path, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: empty metadata %s", domain.ErrCorpusMismatch, path)
	}
	return chunks, nil
}

func loadVectors(path string, rows, dim int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open vector file %s: %w", domain.ErrArtifactMissing, path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat vector file %s: %w", path, err)
	}
	expected := int64(rows) * int64(dim) * 4
	if st.Size() != expected {
		return nil, fmt.Errorf("%w: vector file size %d, want %d (rows=%d dim=%d)",
			domain.ErrCorpusMismatch, st.Size(), expected, rows, dim)
	}

	vectors := make([]float32, rows*dim)
	if err := binary.Read(io.LimitReader(f, expected), binary.LittleEndian, vectors); err != nil {
		return nil, fmt.Errorf("read vectors from %s: %w", path, err)
	}
	return vectors, nil
}
