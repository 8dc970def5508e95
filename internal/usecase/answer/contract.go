package answer

import (
	"context"

	"github.com/agroguide/agroguide/internal/domain"
)

// Retriever is the similarity-search surface the assistant depends on.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)
	Chunks() []domain.Chunk
}

// Generator phrases the final answer from retrieved context. Optional: when
// absent the assistant answers by direct chunk templating.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}
