// Package answer resolves free-text farming questions into grounded answers.
package answer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agroguide/agroguide/internal/domain"
)

// User-facing fallbacks for resolution misses. Misses are answers, never
// errors; only capability failures propagate to the caller.
const (
	msgCropNotDetected = "Sorry, I could not detect the crop."
	msgNothingRelevant = "Sorry, I could not find relevant information."
)

const (
	cropFallbackTopK = 5
	generationTopK   = 3
)

// Service is the answer assembler. It is stateless across calls and safe
// for concurrent use; the crop vocabulary is fixed at construction from the
// retriever's metadata.
type Service struct {
	retriever  Retriever
	generator  Generator
	genTimeout time.Duration
	vocab      []string
	logger     *zap.Logger
}

// New creates an assistant over the retriever. generator may be nil, in
// which case answers are produced by direct chunk templating. genTimeout
// bounds each generation call; zero means no bound.
func New(retriever Retriever, generator Generator, genTimeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		retriever:  retriever,
		generator:  generator,
		genTimeout: genTimeout,
		vocab:      domain.CropVocabulary(retriever.Chunks()),
		logger:     logger,
	}
}

// Answer runs the resolution state machine: crop first, then section, then a
// metadata-exact chunk lookup with a retrieval fallback, and finally answer
// production (template or generative).
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	intent, err := s.resolveIntent(ctx, question)
	if err != nil {
		return "", err
	}
	if intent.Crop == "" {
		return msgCropNotDetected, nil
	}

	chunk, exact := s.selectChunk(intent)
	if chunk == nil {
		return msgNothingRelevant, nil
	}

	s.logger.Debug("Question resolved",
		zap.String("crop", intent.Crop),
		zap.String("section", intent.Section),
		zap.Bool("exact_section", exact),
	)

	if s.generator != nil {
		return s.generate(ctx, question)
	}
	return renderChunk(intent.Crop, *chunk, exact), nil
}

// resolveIntent detects the target crop and section. A crop miss falls back
// to similarity search over the raw question; an empty retrieval leaves the
// crop unresolved.
func (s *Service) resolveIntent(ctx context.Context, question string) (domain.Intent, error) {
	intent := domain.Intent{
		Crop:    domain.ResolveCrop(question, s.vocab),
		Section: domain.ResolveSection(question),
	}
	if intent.Crop != "" {
		return intent, nil
	}

	hits, err := s.retriever.Search(ctx, question, cropFallbackTopK)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("crop fallback retrieval: %w", err)
	}
	if len(hits) > 0 {
		intent.Crop = hits[0].Chunk.Crop
	}
	return intent, nil
}

// selectChunk picks the answer source: the first chunk of the crop whose
// section loosely contains the resolved section, else the first chunk of the
// crop at all. The loose contains-match tolerates near-duplicate section
// names in the metadata.
func (s *Service) selectChunk(intent domain.Intent) (*domain.Chunk, bool) {
	chunks := s.retriever.Chunks()

	if intent.Section != "" {
		want := strings.ToLower(intent.Section)
		for i := range chunks {
			if chunks[i].Crop != intent.Crop {
				continue
			}
			if strings.Contains(strings.ToLower(chunks[i].Section), want) {
				return &chunks[i], true
			}
		}
	}
	for i := range chunks {
		if chunks[i].Crop == intent.Crop {
			return &chunks[i], false
		}
	}
	return nil, false
}

// generate re-retrieves the top chunks for the raw question and delegates
// phrasing to the generation capability. The heuristic chunk selection only
// gates whether an answer exists; the generation context is this fresh
// retrieval window, not the selected chunk.
func (s *Service) generate(ctx context.Context, question string) (string, error) {
	hits, err := s.retriever.Search(ctx, question, generationTopK)
	if err != nil {
		return "", fmt.Errorf("grounding retrieval: %w", err)
	}

	if s.genTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, systemPrompt, userPrompt(question, hits))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return text, nil
}

func renderChunk(crop string, chunk domain.Chunk, exact bool) string {
	if exact {
		return fmt.Sprintf("%s - %s\n\n%s", strings.ToUpper(crop), chunk.Section, chunk.Content)
	}
	return fmt.Sprintf("%s\n\n%s", strings.ToUpper(crop), chunk.Content)
}
