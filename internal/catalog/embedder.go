package catalog

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/prasad/rfp-pilot/internal/llm"
)

// Embedder produces a vector representation of text for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedder embeds text with the configured Gemini embedding model.
type GeminiEmbedder struct {
	client llm.Client
}

// NewGeminiEmbedder wraps an LLM client as an Embedder.
func NewGeminiEmbedder(client llm.Client) *GeminiEmbedder {
	return &GeminiEmbedder{client: client}
}

// Embed returns the model embedding for the given text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.client.Embed(ctx, text)
}

// hashDim is the dimensionality of the fallback embedding space.
const hashDim = 256

// HashEmbedder is a deterministic offline fallback used when no model
// credential is configured. Tokens are hashed into a fixed-size bag-of-words
// vector, which is enough for the demo catalog to rank sensibly and keeps
// the whole pipeline exercisable without network access.
type HashEmbedder struct{}

// NewHashEmbedder creates the credential-less fallback embedder.
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

// Embed hashes lowercase tokens into a normalized fixed-size vector.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, hashDim)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum32()%hashDim]++
	}
	normalize(vec)
	return vec, nil
}

// tokenize splits text into lowercase alphanumeric tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

// normalize scales a vector to unit length in place. Zero vectors are left
// unchanged.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineDistance returns 1 - cosine similarity between two vectors.
// Smaller values indicate closer semantic match. Mismatched or zero-length
// vectors get the maximum distance.
func CosineDistance(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 2.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2.0
	}
	return 1.0 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
