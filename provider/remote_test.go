package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteProviderScoreText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}

		var req remoteScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Text != "submitted essay text" {
			t.Errorf("unexpected text %q", req.Text)
		}

		json.NewEncoder(w).Encode(remoteScoreResponse{
			Score:     42.5,
			Reference: "https://example.com/source1",
			Excerpt:   "matched paragraph",
		})
	}))
	defer server.Close()

	provider, err := NewRemoteProvider(server.URL, "test-key")
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	score, err := provider.ScoreText(context.Background(), "submitted essay text")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if score.Percent != 42.5 {
		t.Fatalf("expected score 42.5, got %v", score.Percent)
	}
	if score.Reference != "https://example.com/source1" {
		t.Fatalf("unexpected reference %q", score.Reference)
	}
}

func TestRemoteProviderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider, err := NewRemoteProvider(server.URL, "")
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	if _, err := provider.ScoreText(context.Background(), "anything"); err == nil {
		t.Fatal("expected error from non-2xx response")
	}
}

func TestNewRemoteProviderRequiresEndpoint(t *testing.T) {
	if _, err := NewRemoteProvider("", ""); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}
