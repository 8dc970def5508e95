package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agroguide/agroguide/internal/domain"
)

// --- Mocks ---

type mockRetriever struct {
	chunks    []domain.Chunk
	hits      []domain.ScoredChunk
	searchErr error
	searched  bool
	lastTopK  int
	lastQuery string
}

func (m *mockRetriever) Search(_ context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	m.searched = true
	m.lastTopK = topK
	m.lastQuery = query
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if topK < len(m.hits) {
		return m.hits[:topK], nil
	}
	return m.hits, nil
}

func (m *mockRetriever) Chunks() []domain.Chunk { return m.chunks }

type mockGenerator struct {
	out      string
	err      error
	called   bool
	lastUser string
}

func (m *mockGenerator) Generate(_ context.Context, _, user string) (string, error) {
	m.called = true
	m.lastUser = user
	return m.out, m.err
}

func kbChunks() []domain.Chunk {
	return []domain.Chunk{
		{Crop: "rice", Section: "General", Content: "Rice is a staple crop."},
		{Crop: "rice", Section: "Soil", Content: "Rice prefers clay loam with pH 5.5 to 6.5."},
		{Crop: "wheat", Section: "Climate", Content: "Wheat needs cool weather during growth."},
	}
}

// --- Tests ---

func TestAnswer_MetadataExactPath(t *testing.T) {
	r := &mockRetriever{chunks: kbChunks()}
	svc := New(r, nil, 0, nil)

	got, err := svc.Answer(context.Background(), "what is the soil ph for rice")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.HasPrefix(got, "RICE - Soil") {
		t.Errorf("expected rice/Soil header, got %q", got)
	}
	if !strings.Contains(got, "clay loam") {
		t.Errorf("expected Soil chunk content, got %q", got)
	}
	if r.searched {
		t.Error("crop was named in the question; retrieval should not run")
	}
}

func TestAnswer_SectionUnresolvedFallsBackToFirstChunk(t *testing.T) {
	svc := New(&mockRetriever{chunks: kbChunks()}, nil, 0, nil)

	got, err := svc.Answer(context.Background(), "tell me about rice")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(got, "staple crop") {
		t.Errorf("expected first rice chunk, got %q", got)
	}
	if strings.Contains(got, " - ") {
		t.Errorf("fallback answer should not carry a section header, got %q", got)
	}
}

func TestAnswer_SectionResolvedButMissingFallsBack(t *testing.T) {
	// wheat has no Irrigation chunk; the crop's first chunk still answers.
	svc := New(&mockRetriever{chunks: kbChunks()}, nil, 0, nil)

	got, err := svc.Answer(context.Background(), "how much water does wheat need")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(got, "cool weather") {
		t.Errorf("expected first wheat chunk as fallback, got %q", got)
	}
}

func TestAnswer_CropFallbackViaRetrieval(t *testing.T) {
	r := &mockRetriever{
		chunks: kbChunks(),
		hits: []domain.ScoredChunk{
			{Chunk: kbChunks()[2], Ordinal: 2, Distance: 0.1},
		},
	}
	svc := New(r, nil, 0, nil)

	got, err := svc.Answer(context.Background(), "my field gets frost at night, what should I grow")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !r.searched || r.lastTopK != 5 {
		t.Errorf("expected top_k=5 fallback retrieval, searched=%v topK=%d", r.searched, r.lastTopK)
	}
	if !strings.HasPrefix(got, "WHEAT") {
		t.Errorf("expected crop from best hit, got %q", got)
	}
}

func TestAnswer_EmptyRetrievalYieldsTextualFallback(t *testing.T) {
	r := &mockRetriever{chunks: kbChunks()}
	svc := New(r, nil, 0, nil)

	got, err := svc.Answer(context.Background(), "completely unrelated question")
	if err != nil {
		t.Fatalf("resolution misses must not error: %v", err)
	}
	if got != msgCropNotDetected {
		t.Errorf("expected %q, got %q", msgCropNotDetected, got)
	}
}

func TestAnswer_CropWithoutChunks(t *testing.T) {
	// Vocabulary comes from metadata, so a resolved crop always has at least
	// one chunk; simulate a stale vocabulary via a crop-bearing hit whose
	// crop is absent from metadata.
	r := &mockRetriever{
		chunks: kbChunks(),
		hits: []domain.ScoredChunk{
			{Chunk: domain.Chunk{Crop: "barley", Section: "Soil", Content: "x"}},
		},
	}
	svc := New(r, nil, 0, nil)

	got, err := svc.Answer(context.Background(), "something with no crop name")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != msgNothingRelevant {
		t.Errorf("expected %q, got %q", msgNothingRelevant, got)
	}
}

func TestAnswer_RetrievalErrorPropagates(t *testing.T) {
	r := &mockRetriever{chunks: kbChunks(), searchErr: errors.New("embedding down")}
	svc := New(r, nil, 0, nil)

	if _, err := svc.Answer(context.Background(), "no crop mentioned here"); err == nil {
		t.Fatal("capability failure must propagate")
	}
}

func TestAnswer_GenerativePathReRetrieves(t *testing.T) {
	r := &mockRetriever{
		chunks: kbChunks(),
		hits: []domain.ScoredChunk{
			{Chunk: kbChunks()[1], Ordinal: 1, Distance: 0.2},
			{Chunk: kbChunks()[0], Ordinal: 0, Distance: 0.3},
		},
	}
	gen := &mockGenerator{out: "Use clay loam. Check drainage. What is your field size?"}
	svc := New(r, gen, 0, nil)

	got, err := svc.Answer(context.Background(), "what is the soil ph for rice")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != gen.out {
		t.Errorf("expected generated text, got %q", got)
	}
	if !gen.called {
		t.Fatal("expected generator to be called")
	}
	if r.lastTopK != 3 {
		t.Errorf("generation grounding should use top_k=3, got %d", r.lastTopK)
	}
	if !strings.Contains(gen.lastUser, "clay loam") {
		t.Errorf("generation context should carry retrieved content, got %q", gen.lastUser)
	}
	if !strings.Contains(gen.lastUser, "what is the soil ph for rice") {
		t.Errorf("generation prompt should carry the original question, got %q", gen.lastUser)
	}
}

func TestAnswer_GeneratorErrorPropagates(t *testing.T) {
	r := &mockRetriever{chunks: kbChunks()}
	gen := &mockGenerator{err: errors.New("model unavailable")}
	svc := New(r, gen, 0, nil)

	if _, err := svc.Answer(context.Background(), "soil for rice"); err == nil {
		t.Fatal("generation failure must propagate")
	}
}

func TestAnswer_GenerativePathStillGatesOnCrop(t *testing.T) {
	// No crop resolves and retrieval is empty: the textual fallback wins even
	// when a generator is configured.
	r := &mockRetriever{chunks: kbChunks()}
	gen := &mockGenerator{out: "should not be used"}
	svc := New(r, gen, 0, nil)

	got, err := svc.Answer(context.Background(), "unrelated question")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != msgCropNotDetected {
		t.Errorf("expected %q, got %q", msgCropNotDetected, got)
	}
	if gen.called {
		t.Error("generator must not run without a resolved crop")
	}
}
