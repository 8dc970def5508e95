package domain

import "fmt"

// DefaultSection is the section assigned to text that precedes any header.
const DefaultSection = "General"

// MinChunkContentLen is the minimum trimmed content length for a chunk to
// carry retrievable signal. Shorter fragments are dropped at build time.
const MinChunkContentLen = 50

// SectionHeaders is the fixed vocabulary of section headers recognized in
// scraped crop pages. A source line must match one of these exactly to open
// a new section.
var SectionHeaders = []string{
	"General Information",
	"Climate",
	"Soil",
	"Popular Varieties",
	"Land Preparation",
	"Sowing",
	"Seed",
	"Fertilizer",
	"Weed Control",
	"Irrigation",
	"Plant protection",
	"Harvesting",
	"Post-Harvest",
}

// Chunk is the atomic unit of crop-advisory knowledge: one topic section of
// one crop page. Chunks are immutable after ingestion; the whole set is
// replaced wholesale on re-ingestion.
type Chunk struct {
	Crop    string `json:"crop"`
	Section string `json:"section"`
	Content string `json:"content"`
}

// CanonicalText returns the text representation that gets embedded. Crop and
// section lead the body so they act as soft keyword boosts in vector space.
func (c Chunk) CanonicalText() string {
	return fmt.Sprintf("Crop: %s\nSection: %s\n%s", c.Crop, c.Section, c.Content)
}

// ScoredChunk is a retrieval hit: a chunk together with its ordinal position
// in the metadata store and its L2 distance to the query vector.
type ScoredChunk struct {
	Chunk    Chunk
	Ordinal  int
	Distance float32
}
