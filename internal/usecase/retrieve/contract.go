package retrieve

import (
	"context"

	"github.com/agroguide/agroguide/internal/domain"
)

// Embedder vectorizes query text. It must be the same capability the index
// was built with; mismatched models produce meaningless rankings, which is a
// caller contract rather than something this layer can enforce.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
