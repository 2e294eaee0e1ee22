package similarity

import (
	"strings"
	"testing"
)

func TestCompareWorkedExample(t *testing.T) {
	// Sets after discarding tokens of three characters or fewer:
	// {quick, brown, jumps, over} and {quick, brown, leaps, higher};
	// intersection 2, union 6 → 33.33.
	got := Compare("the quick brown fox jumps over", "quick brown fox leaps higher", false)

	if got.Similarity != 33.33 {
		t.Fatalf("expected similarity 33.33, got %v", got.Similarity)
	}
	if got.Reason != "" {
		t.Fatalf("expected no reason for a real comparison, got %q", got.Reason)
	}
}

func TestCompareIsSymmetric(t *testing.T) {
	cases := []struct {
		name  string
		a, b  string
		files bool
	}{
		{"worked example", "the quick brown fox jumps over", "quick brown fox leaps higher", false},
		{"identical", "students must cite every external source", "students must cite every external source", true},
		{"one empty", "", "the quick brown fox", false},
		{"partial overlap", "carbon atoms form covalent bonds readily", "covalent bonds form between carbon atoms", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			forward := Compare(c.a, c.b, c.files)
			reverse := Compare(c.b, c.a, c.files)

			if forward.Similarity != reverse.Similarity {
				t.Fatalf("similarity not symmetric: %v vs %v", forward.Similarity, reverse.Similarity)
			}
			if forward.PhraseMatchCount != reverse.PhraseMatchCount {
				t.Fatalf("phrase count not symmetric: %d vs %d", forward.PhraseMatchCount, reverse.PhraseMatchCount)
			}
			if strings.Join(forward.MatchedPhrases, "|") != strings.Join(reverse.MatchedPhrases, "|") {
				t.Fatalf("matched phrases not symmetric: %v vs %v", forward.MatchedPhrases, reverse.MatchedPhrases)
			}
			if forward.Reason != reverse.Reason {
				t.Fatalf("reason not symmetric: %q vs %q", forward.Reason, reverse.Reason)
			}
			if forward.Similarity < 0 || forward.Similarity > 100 {
				t.Fatalf("similarity out of range: %v", forward.Similarity)
			}
		})
	}
}

func TestCompareEmptyInput(t *testing.T) {
	got := Compare("", "the quick brown fox", false)

	if got.Similarity != 0 {
		t.Fatalf("expected similarity 0, got %v", got.Similarity)
	}
	if got.Reason != ReasonInsufficientContent {
		t.Fatalf("expected reason %q, got %q", ReasonInsufficientContent, got.Reason)
	}
	if len(got.MatchedPhrases) != 0 {
		t.Fatalf("expected no matched phrases, got %v", got.MatchedPhrases)
	}
}

func TestCompareOnlyShortTokens(t *testing.T) {
	// Every token is three characters or fewer, so nothing qualifies.
	got := Compare("it is so far off", "the cat sat on a mat", false)

	if got.Similarity != 0 || got.Reason != ReasonInsufficientContent {
		t.Fatalf("expected insufficient content, got similarity %v reason %q", got.Similarity, got.Reason)
	}
}

func TestCompareSelfSimilarity(t *testing.T) {
	text := "photosynthesis converts sunlight into chemical energy inside chloroplasts"
	got := Compare(text, text, false)

	if got.Similarity != 100 {
		t.Fatalf("expected similarity 100, got %v", got.Similarity)
	}
	if len(got.MatchedPhrases) == 0 || got.PhraseMatchCount == 0 {
		t.Fatalf("expected phrase matches for identical text, got %v (count %d)", got.MatchedPhrases, got.PhraseMatchCount)
	}
}

func TestCompareDisjointVocabularies(t *testing.T) {
	got := Compare("alpha delta gamma gremlin", "zephyr quartz nickel pixel", false)

	if got.Similarity != 0 {
		t.Fatalf("expected similarity 0, got %v", got.Similarity)
	}
	if got.Reason != "" {
		t.Fatalf("a real comparison with no overlap must not carry a reason, got %q", got.Reason)
	}
	if got.PhraseMatchCount != 0 {
		t.Fatalf("expected no phrase matches, got %d", got.PhraseMatchCount)
	}
}

func TestComparePhraseCapAndCount(t *testing.T) {
	// Ten qualifying tokens shared verbatim produce eight 3-token windows.
	text := "every student deserves clear feedback about their submitted coursework tonight"
	got := Compare(text, text, false)

	if got.PhraseMatchCount != 8 {
		t.Fatalf("expected 8 distinct matching phrases, got %d", got.PhraseMatchCount)
	}
	if len(got.MatchedPhrases) != maxReportedPhrases {
		t.Fatalf("expected %d reported phrases, got %d", maxReportedPhrases, len(got.MatchedPhrases))
	}
}

func TestComparePhraseEvidenceNeedsWindow(t *testing.T) {
	// Side A has only two qualifying tokens: Jaccard is non-zero but no
	// 3-token window exists, so phrase evidence stays empty.
	got := Compare("quick brown", "quick brown foxes jump", false)

	if got.Similarity <= 0 {
		t.Fatalf("expected positive similarity, got %v", got.Similarity)
	}
	if len(got.MatchedPhrases) != 0 || got.PhraseMatchCount != 0 {
		t.Fatalf("expected no phrase evidence without a full window, got %v", got.MatchedPhrases)
	}
}

func TestCompareFileNote(t *testing.T) {
	with := Compare("shared assignment answer text", "shared assignment answer text", true)
	if with.FileNote == "" {
		t.Fatal("expected a file note when both sides carry files")
	}

	without := Compare("shared assignment answer text", "shared assignment answer text", false)
	if without.FileNote != "" {
		t.Fatalf("expected no file note, got %q", without.FileNote)
	}
}

func TestCompareNormalizesCase(t *testing.T) {
	got := Compare("QUICK Brown FOXES Jump", "quick brown foxes jump", false)
	if got.Similarity != 100 {
		t.Fatalf("expected case-insensitive match at 100, got %v", got.Similarity)
	}
}
