// Package ranking orders candidate texts by embedding cosine similarity to a
// query text.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/cvscreen/cv-screener/internal/embedding"
	"github.com/cvscreen/cv-screener/internal/textnorm"
)

// Result pairs a candidate's original index with its similarity score.
type Result struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Ranker computes similarity rankings through an injected embedding
// provider. It holds no cross-call state; a single Ranker may be shared by
// concurrent callers as long as the provider is safe for concurrent use.
type Ranker struct {
	provider   embedding.Provider
	normalizer *textnorm.Normalizer
	logger     *zap.Logger
}

// New creates a Ranker. A nil normalizer falls back to the default one and a
// nil logger to a no-op logger.
func New(provider embedding.Provider, normalizer *textnorm.Normalizer, logger *zap.Logger) *Ranker {
	if normalizer == nil {
		normalizer = textnorm.NewDefault()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{provider: provider, normalizer: normalizer, logger: logger}
}

// Rank normalizes the query and every candidate, embeds them all in a single
// batched provider call, and returns candidate indices with cosine scores,
// sorted by score descending. Ties keep the original candidate order. The
// result is truncated to topK entries. A provider failure aborts the whole
// ranking; no partial result is returned.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []string, topK int) ([]Result, error) {
	if r.provider == nil {
		return nil, errors.New("embedding provider is required")
	}
	if len(candidates) == 0 {
		return nil, errors.New("at least one candidate is required")
	}
	if topK < 1 {
		return nil, fmt.Errorf("topK must be at least 1, got %d", topK)
	}

	// One batch, one provider round-trip: query first, candidates after.
	batch := make([]string, 0, len(candidates)+1)
	batch = append(batch, r.normalizer.Normalize(query))
	for _, candidate := range candidates {
		batch = append(batch, r.normalizer.Normalize(candidate))
	}

	vectors, err := r.provider.Embed(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("embedding texts: %w", err)
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("provider returned %d vectors for %d texts", len(vectors), len(batch))
	}

	queryVector := vectors[0]
	results := make([]Result, 0, len(candidates))
	for i, vector := range vectors[1:] {
		if len(vector) != len(queryVector) {
			return nil, fmt.Errorf("provider returned inconsistent dimensions: %d and %d", len(queryVector), len(vector))
		}
		results = append(results, Result{Index: i, Score: Cosine(queryVector, vector)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK < len(results) {
		results = results[:topK]
	}

	r.logger.Debug("ranking completed",
		zap.String("model", r.provider.Model()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(results)),
	)

	return results, nil
}

// Cosine returns the cosine similarity of two vectors. A zero-norm vector
// has no defined angle and vectors of different dimensions are not
// comparable; both score 0 instead of failing.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
