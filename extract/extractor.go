package extract

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"simscreen/common"
)

// maxFileBytes caps how much of a submission file is read for extraction.
const maxFileBytes = 4 << 20 // 4 MiB

// ObjectStore is the minimal file-store functionality the extractor needs.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3Extractor resolves s3:// submission file references and extracts plain
// text from formats it understands: HTML through readability, plain text and
// markdown verbatim. Anything else (PDF, DOCX, images) is an extraction
// failure; document-format parsing belongs to an external capability, and
// the screener treats a failed file as contributing no score.
type S3Extractor struct {
	store ObjectStore
}

// NewS3Extractor creates an extractor over the given file store.
func NewS3Extractor(store ObjectStore) *S3Extractor {
	return &S3Extractor{store: store}
}

// Extract fetches the referenced object and returns its extractable text.
func (e *S3Extractor) Extract(ctx context.Context, ref string) (string, error) {
	bucket, key, err := common.ParseRef(ref)
	if err != nil {
		return "", err
	}

	body, err := e.store.Get(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxFileBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", ref, err)
	}

	switch ext := strings.ToLower(path.Ext(key)); ext {
	case ".txt", ".md":
		return string(data), nil
	case ".html", ".htm":
		return extractHTML(data, ref)
	default:
		return "", fmt.Errorf("unsupported file format %q for %s", ext, ref)
	}
}

func extractHTML(data []byte, ref string) (string, error) {
	pageURL, _ := url.Parse(ref)

	article, err := readability.FromReader(strings.NewReader(string(data)), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return article.TextContent, nil
}
