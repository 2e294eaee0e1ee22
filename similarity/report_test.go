package similarity

import (
	"testing"
	"time"
)

func TestPersistPayloadRoundTrip(t *testing.T) {
	score := 37.5
	result := ScreeningResult{
		Score:   &score,
		Checked: true,
		Report: ScreeningReport{
			Sources: []MatchedSource{
				{Reference: "corpus://doc/1", Similarity: 37.5, Excerpt: "copied paragraph", Kind: SourceKindText},
			},
			Similarity: 37.5,
			CheckedAt:  time.Now().UTC(),
		},
	}

	payload := result.PersistPayload()
	if payload.PlagiarismScore == nil || *payload.PlagiarismScore != 37.5 {
		t.Fatalf("expected persisted score 37.5, got %v", payload.PlagiarismScore)
	}
	if !payload.PlagiarismChecked {
		t.Fatal("expected persisted checked=true")
	}

	report, err := ParseReport(payload.PlagiarismReport)
	if err != nil {
		t.Fatalf("stored report failed to parse back: %v", err)
	}
	if report.Similarity != 37.5 || len(report.Sources) != 1 {
		t.Fatalf("round-tripped report lost data: %+v", report)
	}
	if report.Sources[0].Reference != "corpus://doc/1" {
		t.Fatalf("unexpected source reference %q", report.Sources[0].Reference)
	}
}

func TestPersistPayloadUnchecked(t *testing.T) {
	payload := (ScreeningResult{}).PersistPayload()

	if payload.PlagiarismScore != nil {
		t.Fatalf("unchecked result must persist a null score, got %v", *payload.PlagiarismScore)
	}
	if payload.PlagiarismChecked {
		t.Fatal("unchecked result must persist checked=false")
	}
	if _, err := ParseReport(payload.PlagiarismReport); err != nil {
		t.Fatalf("even an empty report must be stored parseable: %v", err)
	}
}

func TestParseReportMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"truncated", `{"sources": [`},
		{"not json", "report unavailable"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report, err := ParseReport(c.raw)
			if err == nil {
				t.Fatalf("expected parse failure for %q, got %+v", c.raw, report)
			}
		})
	}
}
