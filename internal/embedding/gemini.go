package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-embedding-001"

// Gemini produces embeddings through the Gemini API.
type Gemini struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

// NewGemini creates a provider configured for the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gemini{client: client, modelName: model, logger: logger}, nil
}

// Embed sends the whole batch in a single request and returns one vector per
// text, in input order.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini provider is not initialized")
	}
	if len(texts) == 0 {
		return nil, errors.New("at least one text is required")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	g.logger.Debug("gemini embed content request", zap.Int("batch_size", len(texts)))

	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	return vectorsFromResponse(resp, len(texts))
}

func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func vectorsFromResponse(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil || len(resp.Embeddings) == 0 {
		return nil, errors.New("gemini api returned no embeddings")
	}
	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", len(resp.Embeddings), want)
	}

	vectors := make([][]float32, 0, want)
	dimension := 0
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at index %d", i)
		}
		if dimension == 0 {
			dimension = len(embedding.Values)
		}
		if len(embedding.Values) != dimension {
			return nil, fmt.Errorf("gemini api returned inconsistent dimensions: %d and %d", dimension, len(embedding.Values))
		}
		vectors = append(vectors, embedding.Values)
	}

	return vectors, nil
}
