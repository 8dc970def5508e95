package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// Generator maps a prompt (instructions + context + question) to free text.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// EmbeddingResult carries the embedding vector and token usage through the
// embedder decorator chain. A cache hit reports zero tokens.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
