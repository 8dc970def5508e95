package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agroguide/agroguide/internal/db"
	"github.com/agroguide/agroguide/internal/domain"
)

type memStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

type countingEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (e *countingEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	e.calls++
	if e.err != nil {
		return domain.EmbeddingResult{}, e.err
	}
	return domain.EmbeddingResult{Embedding: e.vec, TotalTokens: 11}, nil
}

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{0.5, -1.25, 3}}
	cached := New(inner, newMemStore(), time.Hour, nil, nil)

	first, err := cached.Embed(context.Background(), "soil ph for rice")
	if err != nil {
		t.Fatalf("first Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected inner call on miss, got %d", inner.calls)
	}
	if first.TotalTokens != 11 {
		t.Errorf("miss should report real token usage, got %d", first.TotalTokens)
	}

	second, err := cached.Embed(context.Background(), "soil ph for rice")
	if err != nil {
		t.Fatalf("second Embed: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("hit should not call inner, calls=%d", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit should report zero tokens, got %d", second.TotalTokens)
	}
	for i := range first.Embedding {
		if first.Embedding[i] != second.Embedding[i] {
			t.Fatalf("cached vector differs at %d", i)
		}
	}
}

func TestEmbed_DistinctTextsDistinctKeys(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1}}
	cached := New(inner, newMemStore(), time.Hour, nil, nil)

	_, _ = cached.Embed(context.Background(), "a")
	_, _ = cached.Embed(context.Background(), "b")
	if inner.calls != 2 {
		t.Errorf("different texts must both miss, calls=%d", inner.calls)
	}
}

func TestEmbed_StoreErrorsDegradeToMiss(t *testing.T) {
	inner := &countingEmbedder{vec: []float32{1, 2}}
	s := newMemStore()
	s.getErr = errors.New("redis down")
	s.setErr = errors.New("redis down")
	cached := New(inner, s, time.Hour, nil, nil)

	res, err := cached.Embed(context.Background(), "q")
	if err != nil {
		t.Fatalf("cache failure must not fail the call: %v", err)
	}
	if len(res.Embedding) != 2 {
		t.Errorf("expected inner result, got %v", res.Embedding)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	inner := &countingEmbedder{err: errors.New("provider down")}
	cached := New(inner, newMemStore(), time.Hour, nil, nil)

	if _, err := cached.Embed(context.Background(), "q"); err == nil {
		t.Fatal("expected inner error to propagate")
	}
}
