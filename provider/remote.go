package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"simscreen/similarity"
)

// RemoteProvider calls an external plagiarism-detection API over HTTP.
// Endpoint contract:
//
//	POST <endpoint>
//	Request:  {"text": "..."}
//	Response: {"score": 42.5, "reference": "https://...", "excerpt": "..."}
//
// score is a percentage in [0,100]; reference and excerpt are optional
// provenance for the best match.
type RemoteProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRemoteProvider creates a provider for the given endpoint. apiKey may be
// empty when the endpoint is unauthenticated.
func NewRemoteProvider(endpoint, apiKey string) (*RemoteProvider, error) {
	if endpoint == "" {
		return nil, errors.New("corpus endpoint is required")
	}
	return &RemoteProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   http.DefaultClient,
	}, nil
}

type remoteScoreRequest struct {
	Text string `json:"text"`
}

type remoteScoreResponse struct {
	Score     float64 `json:"score"`
	Reference string  `json:"reference,omitempty"`
	Excerpt   string  `json:"excerpt,omitempty"`
}

// ScoreText submits the text for scoring and returns the API's verdict.
func (p *RemoteProvider) ScoreText(ctx context.Context, text string) (similarity.CorpusScore, error) {
	payload, err := json.Marshal(remoteScoreRequest{Text: text})
	if err != nil {
		return similarity.CorpusScore{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return similarity.CorpusScore{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return similarity.CorpusScore{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return similarity.CorpusScore{}, fmt.Errorf("corpus api error: status %d: %v", resp.StatusCode, body)
	}

	var parsed remoteScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return similarity.CorpusScore{}, err
	}

	return similarity.CorpusScore{
		Percent:   parsed.Score,
		Reference: parsed.Reference,
		Excerpt:   parsed.Excerpt,
	}, nil
}
