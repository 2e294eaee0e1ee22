package provider

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"simscreen/similarity"
)

// ReferenceDoc is one entry of the reference corpus a CohereProvider screens
// submissions against: typically course readings, past cohorts' submissions
// or known essay-mill material, loaded by the operator at startup.
type ReferenceDoc struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// CohereProvider scores submission text against a reference corpus using
// Cohere embeddings: the submission and every reference are embedded, and
// the best cosine similarity becomes the reported percentage.
// Docs: https://docs.cohere.com/reference/embed
type CohereProvider struct {
	client     *cohereclient.Client
	model      string
	references []ReferenceDoc
	refVectors [][]float32
}

// CohereConfig configures the Cohere-backed score provider.
type CohereConfig struct {
	APIKey     string
	Model      string // Default: embed-english-v3.0
	References []ReferenceDoc
}

const excerptLength = 100

// NewCohereProvider creates the provider and eagerly embeds the reference
// corpus so that per-submission scoring costs a single embed call.
func NewCohereProvider(ctx context.Context, cfg CohereConfig) (*CohereProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("cohere api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "embed-english-v3.0"
	}

	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere API.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(cfg.APIKey),
		cohereclient.WithHTTPClient(httpClient),
	)

	p := &CohereProvider{client: client, model: cfg.Model, references: cfg.References}

	if len(cfg.References) > 0 {
		texts := make([]string, len(cfg.References))
		for i, ref := range cfg.References {
			texts[i] = ref.Text
		}
		vectors, err := p.embed(ctx, texts, cohere.EmbedInputTypeSearchDocument)
		if err != nil {
			return nil, fmt.Errorf("failed to embed reference corpus: %w", err)
		}
		p.refVectors = vectors
	}

	return p, nil
}

// ScoreText embeds the submission text and reports the best cosine
// similarity against the reference corpus as a percentage, with the closest
// reference as provenance. An empty corpus yields a clean zero.
func (p *CohereProvider) ScoreText(ctx context.Context, text string) (similarity.CorpusScore, error) {
	if len(p.refVectors) == 0 {
		return similarity.CorpusScore{}, nil
	}

	vectors, err := p.embed(ctx, []string{text}, cohere.EmbedInputTypeSearchQuery)
	if err != nil {
		return similarity.CorpusScore{}, err
	}
	query := vectors[0]

	bestIndex := -1
	bestSim := float32(0)
	for i, ref := range p.refVectors {
		if sim := cosineSimilarity(query, ref); sim > bestSim {
			bestSim = sim
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		return similarity.CorpusScore{}, nil
	}

	reference := p.references[bestIndex]
	percent := math.Round(float64(bestSim)*100*100) / 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return similarity.CorpusScore{
		Percent:   percent,
		Reference: reference.Name,
		Excerpt:   excerpt(reference.Text),
	}, nil
}

func (p *CohereProvider) embed(ctx context.Context, texts []string, inputType cohere.EmbedInputType) ([][]float32, error) {
	resp, err := p.client.V2.Embed(ctx, &cohere.V2EmbedRequest{
		Texts:          texts,
		Model:          p.model,
		InputType:      inputType,
		EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
	})
	if err != nil {
		return nil, fmt.Errorf("cohere embed error: %w", err)
	}
	if resp == nil || resp.Embeddings == nil || resp.Embeddings.Float == nil {
		return nil, errors.New("cohere embed returned no float embeddings")
	}

	floats := resp.Embeddings.Float
	if len(floats) != len(texts) {
		return nil, errors.New("embedding count mismatch")
	}

	out := make([][]float32, len(floats))
	for i, vec := range floats {
		fv := make([]float32, len(vec))
		for j, v := range vec {
			fv[j] = float32(v)
		}
		out[i] = fv
	}
	return out, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors,
// clamped to [0,1]. Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
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

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return float32(sim)
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return string(runes[:excerptLength]) + "..."
}
