package index

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/domain"
)

const indexVersion = 1

// Build embeds every chunk's canonical text and assembles the indexed
// corpus. Any embedding failure aborts the whole build: a partial index is
// worse than none, and a rerun from scratch is cheap at this data scale.
func Build(ctx context.Context, embedder domain.Embedder, chunks []domain.Chunk, model string, logger *zap.Logger) (*Corpus, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to index")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		vectors []float32
		dim     int
		tokens  int
	)
	for i, chunk := range chunks {
		res, err := embedder.Embed(ctx, chunk.CanonicalText())
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d (%s/%s): %w", i, chunk.Crop, chunk.Section, err)
		}
		if dim == 0 {
			dim = len(res.Embedding)
		}
		if len(res.Embedding) != dim {
			return nil, fmt.Errorf("embedding dim changed mid-run at chunk %d: got %d want %d",
				i, len(res.Embedding), dim)
		}
		vectors = append(vectors, res.Embedding...)
		tokens += res.TotalTokens
	}
	if dim == 0 {
		return nil, fmt.Errorf("embedding capability returned empty vectors")
	}

	logger.Info("Corpus embedded",
		zap.Int("chunks", len(chunks)),
		zap.Int("dim", dim),
		zap.Int("total_tokens", tokens),
	)

	return &Corpus{
		Manifest: Manifest{
			IndexVersion: indexVersion,
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
			Model:        model,
			Dim:          dim,
			Rows:         len(chunks),
			VectorFile:   VectorFile,
			MetadataFile: MetadataFile,
		},
		Chunks:  chunks,
		Vectors: vectors,
	}, nil
}
