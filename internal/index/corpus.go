// Package index builds, persists, loads, and searches the indexed corpus:
// a flat vector index and its ordinal-joined chunk metadata, always handled
// as one value.
package index

import (
	"sort"

	"github.com/agroguide/agroguide/internal/domain"
)

// Artifact filenames inside the index directory.
const (
	ManifestFile = "manifest.json"
	VectorFile   = "vectors.f32"
	MetadataFile = "chunks_metadata.json"
)

// Manifest describes an indexed corpus and how to interpret its artifacts.
type Manifest struct {
	IndexVersion int    `json:"index_version"`
	CreatedAt    string `json:"created_at"`
	Model        string `json:"model"`
	Dim          int    `json:"dim"`
	Rows         int    `json:"rows"`
	VectorFile   string `json:"vector_file"`
	MetadataFile string `json:"metadata_file"`
}

// Corpus is a loaded indexed corpus. Vectors are stored row-major: row i
// occupies Vectors[i*Dim : (i+1)*Dim] and corresponds to Chunks[i]. The
// position is the only join key, so Chunks and Vectors are never reordered
// independently. A Corpus is immutable after construction; concurrent
// searches need no locking.
type Corpus struct {
	Manifest Manifest
	Chunks   []domain.Chunk
	Vectors  []float32
}

// Rows returns the number of indexed chunks.
func (c *Corpus) Rows() int { return len(c.Chunks) }

// row returns the vector of chunk i.
func (c *Corpus) row(i int) []float32 {
	d := c.Manifest.Dim
	return c.Vectors[i*d : (i+1)*d]
}

// Search runs an exhaustive L2 scan and returns the topK nearest chunks in
// ascending distance order, ties broken by ordinal. topK above the corpus
// size returns the whole corpus; topK <= 0 returns nothing. Distances are
// squared L2, which preserves the ranking.
func (c *Corpus) Search(query []float32, topK int) []domain.ScoredChunk {
	if topK <= 0 || c.Rows() == 0 {
		return nil
	}
	if topK > c.Rows() {
		topK = c.Rows()
	}

	hits := make([]domain.ScoredChunk, c.Rows())
	for i := 0; i < c.Rows(); i++ {
		hits[i] = domain.ScoredChunk{
			Chunk:    c.Chunks[i],
			Ordinal:  i,
			Distance: l2Squared(query, c.row(i)),
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})

	return hits[:topK]
}

func l2Squared(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
