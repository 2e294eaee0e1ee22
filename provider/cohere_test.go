package provider

import (
	"context"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamped to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := cosineSimilarity(c.a, c.b)
			if diff := got - c.want; diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("cosineSimilarity = %v, want %v", got, c.want)
			}
		})
	}
}

func TestExcerptTruncates(t *testing.T) {
	short := "short reference text"
	if got := excerpt(short); got != short {
		t.Fatalf("short text must not be truncated, got %q", got)
	}

	long := make([]byte, 0, 300)
	for i := 0; i < 300; i++ {
		long = append(long, 'x')
	}
	got := excerpt(string(long))
	if len([]rune(got)) != excerptLength+3 {
		t.Fatalf("expected %d runes plus ellipsis, got %d", excerptLength, len([]rune(got)))
	}
}

func TestNewCohereProviderRequiresKey(t *testing.T) {
	if _, err := NewCohereProvider(context.Background(), CohereConfig{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
