// Package embedding defines the boundary to external embedding models and
// the Gemini implementation of it.
package embedding

import "context"

// Provider maps a batch of texts to fixed-length numeric vectors. Vectors
// from two different providers (or model versions) are not comparable.
// Implementations must return exactly one vector per input text, all of the
// same dimension, or an error.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}
