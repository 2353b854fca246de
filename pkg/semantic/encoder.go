package semantic

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// Encoder turns text into sentence embeddings. It is the one external
// capability the analyzer consumes; when unavailable, the analyzer runs
// on the keyword fallback instead.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// OpenAIEncoder backs the Encoder with the OpenAI embeddings API.
type OpenAIEncoder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEncoder creates an encoder using the given API key.
func NewOpenAIEncoder(apiKey string) *OpenAIEncoder {
	return &OpenAIEncoder{
		client: openai.NewClient(apiKey),
		model:  openai.SmallEmbedding3,
	}
}

// Encode embeds a batch of texts in one request.
func (e *OpenAIEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response size mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
