package similarity

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// minTokenLength is the shortest token that participates in
	// comparison. Dropping short tokens acts as a rough stop-word filter.
	minTokenLength = 4

	// phraseWindow is the n-gram size used for matched-phrase evidence.
	phraseWindow = 3

	// maxReportedPhrases caps how many example phrases a comparison
	// reports; the total match count is always reported in full.
	maxReportedPhrases = 5
)

const fileComparisonNote = "both submissions contain files; file content was not compared"

// Compare computes the similarity between two pieces of submitted text.
// It is pure and safe for concurrent use. bothHaveFiles should be set when
// both submissions also carried file references, so the result records that
// file content was not part of the comparison.
//
// The result is identical for Compare(x, y, f) and Compare(y, x, f); the
// caller attaches submission ids and student labels afterwards.
func Compare(textA, textB string, bothHaveFiles bool) PairwiseComparison {
	comparison := PairwiseComparison{CheckedAt: time.Now()}
	if bothHaveFiles {
		comparison.FileNote = fileComparisonNote
	}

	tokensA := qualifyingTokens(textA)
	tokensB := qualifyingTokens(textB)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		comparison.Reason = ReasonInsufficientContent
		return comparison
	}

	comparison.Similarity = jaccardPercent(tokensA, tokensB)

	phrases := matchingPhrases(tokensA, tokensB)
	comparison.PhraseMatchCount = len(phrases)
	if len(phrases) > maxReportedPhrases {
		phrases = phrases[:maxReportedPhrases]
	}
	comparison.MatchedPhrases = phrases

	return comparison
}

// qualifyingTokens lowercases, trims and whitespace-splits the text, then
// drops tokens shorter than minTokenLength runes. Order is preserved.
func qualifyingTokens(text string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= minTokenLength {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// jaccardPercent computes |A∩B| / |A∪B| over deduplicated token sets,
// as a percentage rounded to 2 decimal places.
func jaccardPercent(tokensA, tokensB []string) float64 {
	setA := make(map[string]struct{}, len(tokensA))
	for _, token := range tokensA {
		setA[token] = struct{}{}
	}

	setB := make(map[string]struct{}, len(tokensB))
	for _, token := range tokensB {
		setB[token] = struct{}{}
	}

	intersection := 0
	for token := range setB {
		if _, ok := setA[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	percent := float64(intersection) / float64(union) * 100
	return math.Round(percent*100) / 100
}

// matchingPhrases intersects the contiguous 3-token windows of both filtered
// token sequences and returns the distinct shared phrases in sorted order.
// A side shorter than the window contributes no phrases.
func matchingPhrases(tokensA, tokensB []string) []string {
	windowsA := phraseWindows(tokensA)
	if len(windowsA) == 0 {
		return nil
	}
	windowsB := phraseWindows(tokensB)
	if len(windowsB) == 0 {
		return nil
	}

	var shared []string
	for phrase := range windowsA {
		if _, ok := windowsB[phrase]; ok {
			shared = append(shared, phrase)
		}
	}
	if len(shared) == 0 {
		return nil
	}

	// Sorted so that the capped examples are deterministic and symmetric.
	sort.Strings(shared)
	return shared
}

func phraseWindows(tokens []string) map[string]struct{} {
	if len(tokens) < phraseWindow {
		return nil
	}

	windows := make(map[string]struct{}, len(tokens)-phraseWindow+1)
	for i := 0; i <= len(tokens)-phraseWindow; i++ {
		windows[strings.Join(tokens[i:i+phraseWindow], " ")] = struct{}{}
	}
	return windows
}
