package domain

import "errors"

var (
	// ErrArtifactMissing signals a missing or unreadable index artifact.
	ErrArtifactMissing = errors.New("index artifact missing")
	// ErrCorpusMismatch signals disagreement between the vector index and
	// the metadata store (row count, dimension, or file size).
	ErrCorpusMismatch = errors.New("index and metadata disagree")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a generation provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
)
