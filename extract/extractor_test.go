package extract

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeStore struct {
	objects map[string]string
}

func (f *fakeStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	content, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestExtractPlainText(t *testing.T) {
	store := &fakeStore{objects: map[string]string{
		"submissions/a1/answer.txt": "my typed up answer",
	}}
	extractor := NewS3Extractor(store)

	text, err := extractor.Extract(context.Background(), "s3://submissions/a1/answer.txt")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "my typed up answer" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractHTML(t *testing.T) {
	store := &fakeStore{objects: map[string]string{
		"submissions/a1/essay.html": `<html><head><title>Essay</title></head><body><article><p>The industrial revolution transformed European society in profound and lasting ways.</p><p>Steam power replaced manual labour across factories, mines and mills throughout the continent.</p></article></body></html>`,
	}}
	extractor := NewS3Extractor(store)

	text, err := extractor.Extract(context.Background(), "s3://submissions/a1/essay.html")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(text, "industrial revolution") {
		t.Fatalf("expected extracted body text, got %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Fatalf("expected markup stripped, got %q", text)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	store := &fakeStore{objects: map[string]string{
		"submissions/a1/essay.pdf": "%PDF-1.7 ...",
	}}
	extractor := NewS3Extractor(store)

	if _, err := extractor.Extract(context.Background(), "s3://submissions/a1/essay.pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExtractBadReference(t *testing.T) {
	extractor := NewS3Extractor(&fakeStore{})

	cases := []string{
		"https://example.com/file.txt",
		"s3://bucket-only",
		"s3:///missing-bucket/key.txt",
	}
	for _, ref := range cases {
		if _, err := extractor.Extract(context.Background(), ref); err == nil {
			t.Fatalf("expected error for reference %q", ref)
		}
	}
}

func TestExtractMissingObject(t *testing.T) {
	extractor := NewS3Extractor(&fakeStore{})

	if _, err := extractor.Extract(context.Background(), "s3://submissions/a1/gone.txt"); err == nil {
		t.Fatal("expected error for missing object")
	}
}
