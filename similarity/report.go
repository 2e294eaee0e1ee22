package similarity

import (
	"encoding/json"
	"fmt"
	"time"
)

// SourceKind tags where a matched source came from.
type SourceKind string

const (
	SourceKindText SourceKind = "text"
	SourceKindFile SourceKind = "file"
)

// Reason names why a comparison produced no meaningful similarity.
// It distinguishes "compared, no overlap" from "could not compare".
type Reason string

// ReasonInsufficientContent means one or both sides had no qualifying
// tokens. This is a named result variant, not an error.
const ReasonInsufficientContent Reason = "insufficient_content"

// MatchedSource is one piece of provenance in a screening report.
type MatchedSource struct {
	Reference  string     `json:"reference"`
	Similarity float64    `json:"similarity"`
	Excerpt    string     `json:"excerpt,omitempty"`
	Kind       SourceKind `json:"kind"`
}

// ScreeningReport is the serializable payload the caller stores as opaque
// text alongside its submission record. If Error is set, Sources is empty.
type ScreeningReport struct {
	Sources    []MatchedSource `json:"sources"`
	Similarity float64         `json:"similarity"`
	CheckedAt  time.Time       `json:"checked_at"`
	Error      string          `json:"error,omitempty"`
}

// ScreeningResult is the outcome of screening one submission.
// Checked=false means no score was produced (nothing to check, or every
// channel failed); Score is nil exactly when Checked is false.
type ScreeningResult struct {
	Score   *float64        `json:"score,omitempty"`
	Checked bool            `json:"checked"`
	Report  ScreeningReport `json:"report"`
}

// PersistPayload is the triple the submission workflow writes onto its own
// submission record. The write is idempotent: re-screening fully overwrites
// the previous values.
type PersistPayload struct {
	PlagiarismScore   *float64 `json:"plagiarism_score"`
	PlagiarismChecked bool     `json:"plagiarism_checked"`
	PlagiarismReport  string   `json:"plagiarism_report"`
}

// PersistPayload renders the result into the shape the caller persists.
// The report is JSON-marshalled to a string so storage can treat it as
// opaque text.
func (r ScreeningResult) PersistPayload() PersistPayload {
	report, err := json.Marshal(r.Report)
	if err != nil {
		// A report is built from plain values and cannot normally fail to
		// marshal; keep the submission write path alive regardless.
		report = []byte("{}")
	}

	return PersistPayload{
		PlagiarismScore:   r.Score,
		PlagiarismChecked: r.Checked,
		PlagiarismReport:  string(report),
	}
}

// ParseReport reads a previously stored report back. Callers must treat an
// error as "report unavailable" and degrade their display; a stored blob
// that no longer parses is never a user-facing crash.
func ParseReport(raw string) (*ScreeningReport, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty report")
	}

	var report ScreeningReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("malformed screening report: %w", err)
	}
	return &report, nil
}

// PairwiseComparison is the result of comparing two submissions' text.
// The pair is unordered; SubmissionA/SubmissionB are stored in canonical
// order (smaller id first) so each pair is computed and reported once.
type PairwiseComparison struct {
	SubmissionA string `json:"submission_a,omitempty"`
	SubmissionB string `json:"submission_b,omitempty"`
	StudentA    string `json:"student_a,omitempty"`
	StudentB    string `json:"student_b,omitempty"`

	// Similarity is the Jaccard coefficient over qualifying token sets,
	// expressed as a percentage with 2-decimal precision.
	Similarity float64 `json:"similarity"`

	// MatchedPhrases holds up to maxReportedPhrases example 3-token
	// phrases found on both sides; PhraseMatchCount is the total number
	// of distinct matching phrases.
	MatchedPhrases   []string `json:"matched_phrases,omitempty"`
	PhraseMatchCount int      `json:"phrase_match_count"`

	// Reason is set only when Similarity is 0 because no meaningful
	// comparison was possible.
	Reason Reason `json:"reason,omitempty"`

	// FileNote records that both submissions carried files whose content
	// was not part of this text comparison.
	FileNote string `json:"file_note,omitempty"`

	CheckedAt time.Time `json:"checked_at"`
}
