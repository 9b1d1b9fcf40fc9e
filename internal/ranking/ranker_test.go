package ranking

import (
	"context"
	"errors"
	"math"
	"testing"
)

// stubProvider returns deterministic vectors: identical texts get identical
// vectors and distinct texts get orthogonal ones.
type stubProvider struct {
	calls int
	err   error
}

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	axes := make(map[string]int)
	for _, text := range texts {
		if _, ok := axes[text]; !ok {
			axes[text] = len(axes)
		}
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, len(axes))
		vector[axes[text]] = 1
		vectors[i] = vector
	}
	return vectors, nil
}

func (s *stubProvider) Model() string { return "stub-model" }

// zeroProvider returns a zero vector for every text.
type zeroProvider struct{}

func (zeroProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = make([]float32, 4)
	}
	return vectors, nil
}

func (zeroProvider) Model() string { return "zero-model" }

func TestRankIdenticalCandidateWinsAndTopKTruncates(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	ranker := New(stub, nil, nil)

	results, err := ranker.Rank(context.Background(), "go developer", []string{"go developer", "data analyst", "chef"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Index != 0 {
		t.Fatalf("expected candidate identical to query first, got index %d", results[0].Index)
	}
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Fatalf("expected score 1.0 for identical candidate, got %v", results[0].Score)
	}
	// The other candidates are orthogonal to the query and tie at 0; the stable sort
	// keeps original input order.
	if results[1].Index != 1 {
		t.Fatalf("expected tie broken by input order, got index %d", results[1].Index)
	}
}

func TestRankEmbedsExactlyOnce(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	ranker := New(stub, nil, nil)

	candidates := []string{"one", "two", "three", "four", "five"}
	if _, err := ranker.Rank(context.Background(), "query", candidates, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.calls != 1 {
		t.Fatalf("expected a single provider call, got %d", stub.calls)
	}
}

func TestRankTopKLargerThanCandidates(t *testing.T) {
	t.Parallel()

	ranker := New(&stubProvider{}, nil, nil)
	results, err := ranker.Rank(context.Background(), "go", []string{"go", "rust"}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected all candidates, got %d", len(results))
	}
}

func TestRankPropagatesProviderError(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("provider unavailable")
	ranker := New(&stubProvider{err: providerErr}, nil, nil)

	if _, err := ranker.Rank(context.Background(), "go", []string{"rust"}, 1); !errors.Is(err, providerErr) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
}

func TestRankPreconditions(t *testing.T) {
	t.Parallel()

	ranker := New(&stubProvider{}, nil, nil)

	if _, err := ranker.Rank(context.Background(), "go", nil, 1); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
	if _, err := ranker.Rank(context.Background(), "go", []string{"rust"}, 0); err == nil {
		t.Fatalf("expected error for topK < 1")
	}
}

func TestRankZeroVectorsScoreZero(t *testing.T) {
	t.Parallel()

	ranker := New(zeroProvider{}, nil, nil)

	results, err := ranker.Rank(context.Background(), "go", []string{"rust", "zig"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, result := range results {
		if result.Score != 0 {
			t.Fatalf("expected zero score for zero vectors, got %v", result.Score)
		}
	}
}

func TestCosine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   []float32
		expect float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expect: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expect: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, expect: -1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, expect: 0},
		{name: "mismatched dimensions", a: []float32{1, 2, 3}, b: []float32{1, 2}, expect: 0},
		{name: "longer second vector", a: []float32{1}, b: []float32{1, 2, 3}, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.expect) > 1e-9 {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}
