// Package retrieve answers similarity queries over a loaded indexed corpus.
package retrieve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/domain"
	"github.com/agroguide/agroguide/internal/index"
)

// Service is the retriever: an immutable corpus plus the query embedder.
// Construct it once at process start and share it across callers; searches
// are pure reads and safe to run concurrently without locking.
type Service struct {
	corpus *index.Corpus
	embed  Embedder
	logger *zap.Logger
}

// New creates a retriever over an already-loaded corpus.
func New(corpus *index.Corpus, embed Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{corpus: corpus, embed: embed, logger: logger}
}

// Open loads the index artifacts from dir and wraps them in a retriever.
// It fails fast when artifacts are missing, corrupt, or disagree in size.
func Open(dir string, embed Embedder, logger *zap.Logger) (*Service, error) {
	corpus, err := index.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", dir, err)
	}
	if logger != nil {
		logger.Info("Index loaded",
			zap.String("dir", dir),
			zap.Int("rows", corpus.Rows()),
			zap.Int("dim", corpus.Manifest.Dim),
			zap.String("model", corpus.Manifest.Model),
		)
	}
	return New(corpus, embed, logger), nil
}

// Chunks exposes the metadata store in index order for metadata-level
// consumers such as the answer assembler.
func (s *Service) Chunks() []domain.Chunk { return s.corpus.Chunks }

// Search embeds the query and returns the topK nearest chunks by ascending
// distance. topK <= 0 returns an empty result without calling the embedding
// capability; that is a normal outcome, not an error.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	if topK <= 0 {
		return nil, nil
	}
	res, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.corpus.Search(res.Embedding, topK), nil
}
