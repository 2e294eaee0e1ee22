package similarity

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"simscreen/types"
)

const (
	// DefaultCallTimeout bounds each call to an injected capability.
	DefaultCallTimeout = 10 * time.Second

	resubmissionReference = "resubmitted-content"
)

// ScoreProvider is the pluggable external-corpus lookup. Implementations
// return a percentage in [0,100] plus whatever provenance they have.
// Production code supplies a real similarity-index client; tests supply a
// deterministic stub.
type ScoreProvider interface {
	ScoreText(ctx context.Context, text string) (CorpusScore, error)
}

// CorpusScore is one provider verdict with its provenance.
type CorpusScore struct {
	Percent   float64 `json:"percent"`
	Reference string  `json:"reference,omitempty"`
	Excerpt   string  `json:"excerpt,omitempty"`
}

// FileTextExtractor resolves a submission file reference into extractable
// text. A reference whose format cannot be handled is an error; the screener
// treats every error as "that file contributes no score".
type FileTextExtractor interface {
	Extract(ctx context.Context, ref string) (string, error)
}

// ResubmissionFilter is an optional probabilistic filter over previously
// screened content hashes. A hit means the exact same text was screened
// before within the filter's TTL window.
type ResubmissionFilter interface {
	Exists(hash string) (bool, error)
	Add(hash string) error
}

// Screener scores one submission against the external reference corpus.
// It is best-effort enrichment: Screen never fails, and a provider outage
// only means the submission goes unchecked.
type Screener struct {
	provider    ScoreProvider
	extractor   FileTextExtractor
	filter      ResubmissionFilter
	callTimeout time.Duration
}

// ScreenerConfig holds configuration for the screener. Provider may be nil
// when no corpus lookup is configured; Extractor may be nil when file
// references cannot be resolved; Filter may be nil to disable the
// exact-resubmission fast path.
type ScreenerConfig struct {
	Provider    ScoreProvider
	Extractor   FileTextExtractor
	Filter      ResubmissionFilter
	CallTimeout time.Duration // Default: DefaultCallTimeout
}

// NewScreener creates a screener from the given configuration.
func NewScreener(config ScreenerConfig) *Screener {
	if config.CallTimeout <= 0 {
		config.CallTimeout = DefaultCallTimeout
	}

	return &Screener{
		provider:    config.Provider,
		extractor:   config.Extractor,
		filter:      config.Filter,
		callTimeout: config.CallTimeout,
	}
}

// Screen checks one submission's content against the reference corpus and
// returns the aggregated result. The reported score is the maximum over the
// channels that produced a usable verdict: either channel alone indicating
// copying is enough. Failures of injected capabilities are absorbed; when no
// channel produces a verdict the result is simply "not checked".
func (s *Screener) Screen(ctx context.Context, content types.SubmissionContent) (result ScreeningResult) {
	checkedAt := time.Now()

	// Screening must never raise past this boundary, whatever an injected
	// implementation does.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: screening panicked: %v", r)
			result = ScreeningResult{
				Checked: false,
				Report: ScreeningReport{
					CheckedAt: checkedAt,
					Error:     fmt.Sprintf("screening aborted: %v", r),
				},
			}
		}
	}()

	result.Report = ScreeningReport{CheckedAt: checkedAt}

	// "Nothing to check" is distinct from "checked, found nothing".
	if content.IsEmpty() {
		return result
	}

	usable := false
	best := 0.0

	record := func(score CorpusScore, kind SourceKind) {
		usable = true
		percent := clampPercent(score.Percent)
		if percent > best {
			best = percent
		}
		if percent > 0 {
			result.Report.Sources = append(result.Report.Sources, MatchedSource{
				Reference:  score.Reference,
				Similarity: percent,
				Excerpt:    score.Excerpt,
				Kind:       kind,
			})
		}
	}

	if content.HasText() {
		text := strings.TrimSpace(content.Text)

		if hit := s.checkResubmission(text); hit {
			record(CorpusScore{Percent: 100, Reference: resubmissionReference}, SourceKindText)
		}

		if score, ok := s.scoreText(ctx, text); ok {
			record(score, SourceKindText)
		}
	}

	if content.HasFiles() && s.extractor != nil {
		if fileText := s.extractFiles(ctx, content.FileRefs); fileText != "" {
			if score, ok := s.scoreText(ctx, fileText); ok {
				if score.Reference == "" {
					score.Reference = content.FileRefs[0]
				}
				record(score, SourceKindFile)
			}
		}
	}

	if !usable {
		return result
	}

	result.Checked = true
	result.Score = &best
	result.Report.Similarity = best
	return result
}

// ScreenBatch screens many submissions and returns results keyed by
// submission ID. Screening is cheap and idempotent, so callers that want
// retries simply call again.
func (s *Screener) ScreenBatch(ctx context.Context, submissions []*types.Submission) map[string]ScreeningResult {
	results := make(map[string]ScreeningResult, len(submissions))
	for _, submission := range submissions {
		results[submission.ID] = s.Screen(ctx, submission.SubmissionContent)
	}
	return results
}

// scoreText invokes the provider under the call timeout. Any failure is a
// soft failure: logged, absorbed, and the channel yields nothing.
func (s *Screener) scoreText(ctx context.Context, text string) (CorpusScore, bool) {
	if s.provider == nil {
		return CorpusScore{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	score, err := s.provider.ScoreText(callCtx, text)
	if err != nil {
		log.Printf("Warning: corpus provider failed: %v", err)
		return CorpusScore{}, false
	}
	return score, true
}

// extractFiles resolves each file reference and concatenates whatever text
// could be extracted. Files that cannot be extracted contribute nothing;
// a synthetic score is never substituted.
func (s *Screener) extractFiles(ctx context.Context, refs []string) string {
	var parts []string
	for _, ref := range refs {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		text, err := s.extractor.Extract(callCtx, ref)
		cancel()

		if err != nil {
			log.Printf("Warning: text extraction failed for %s: %v", ref, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// checkResubmission consults the optional exact-duplicate fast path. On a
// miss the content hash is recorded for future checks. Filter failures are
// soft: the screening proceeds on the provider channels alone.
func (s *Screener) checkResubmission(text string) bool {
	if s.filter == nil {
		return false
	}

	hash := NormalizeAndHash(text)

	exists, err := s.filter.Exists(hash)
	if err != nil {
		log.Printf("Warning: resubmission filter check failed: %v", err)
		return false
	}
	if exists {
		return true
	}

	if err := s.filter.Add(hash); err != nil {
		log.Printf("Warning: failed to record content hash: %v", err)
	}
	return false
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
