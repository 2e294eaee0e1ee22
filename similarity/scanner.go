package similarity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"simscreen/types"
)

// DefaultScanWorkers is the size of the comparison worker pool.
const DefaultScanWorkers = 5

// Scanner runs all-pairs comparison across every submission in one
// assignment's cohort. Pairwise comparisons are independent, so they run on
// a bounded worker pool and the results are collected and sorted only at the
// end, never streamed in discovery order.
//
// A cohort is one class roster (tens to low hundreds of students), so the
// O(N²) comparison count is an accepted ceiling. Blocking or bucketing
// candidate pairs before full comparison is a future extension point.
type Scanner struct {
	workers int
	compare func(textA, textB string, bothHaveFiles bool) PairwiseComparison
}

// ScannerConfig holds configuration for the cohort scanner.
type ScannerConfig struct {
	Workers int // Default: DefaultScanWorkers
}

// NewScanner creates a cohort scanner.
func NewScanner(config ScannerConfig) *Scanner {
	if config.Workers <= 0 {
		config.Workers = DefaultScanWorkers
	}
	return &Scanner{workers: config.Workers, compare: Compare}
}

type scanPair struct {
	a, b *types.Submission
}

// Scan compares every unordered pair of qualifying submissions exactly once
// and returns the pairs with similarity above zero, sorted descending by
// similarity with ties broken by canonical pair identity. Submissions whose
// trimmed text is empty are excluded up front; file-only submissions do not
// take part in text-based cohort comparison.
//
// Cancelling ctx stops scheduling new pairs; comparisons already in flight
// finish, and everything computed so far is returned alongside the context
// error. Partial results are valid and usable.
func (s *Scanner) Scan(ctx context.Context, submissions []*types.Submission) ([]PairwiseComparison, error) {
	qualifying := make([]*types.Submission, 0, len(submissions))
	for _, submission := range submissions {
		if strings.TrimSpace(submission.Text) != "" {
			qualifying = append(qualifying, submission)
		}
	}

	if len(qualifying) < 2 {
		return nil, ctx.Err()
	}

	pairs := make(chan scanPair)
	comparisons := make(chan PairwiseComparison)

	var workers sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for pair := range pairs {
				comparisons <- s.comparePair(pair.a, pair.b)
			}
		}()
	}

	// Scheduler: every unordered pair exactly once, stopping on
	// cancellation. N qualifying submissions yield N×(N−1)/2 pairs.
	go func() {
		defer close(pairs)
		for i := 0; i < len(qualifying); i++ {
			for j := i + 1; j < len(qualifying); j++ {
				select {
				case pairs <- scanPair{a: qualifying[i], b: qualifying[j]}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		workers.Wait()
		close(comparisons)
	}()

	var results []PairwiseComparison
	for comparison := range comparisons {
		// Zero-similarity pairs carry no actionable signal.
		if comparison.Similarity > 0 {
			results = append(results, comparison)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		if results[i].SubmissionA != results[j].SubmissionA {
			return results[i].SubmissionA < results[j].SubmissionA
		}
		return results[i].SubmissionB < results[j].SubmissionB
	})

	return results, ctx.Err()
}

func (s *Scanner) comparePair(a, b *types.Submission) PairwiseComparison {
	return comparePairWith(s.compare, a, b)
}

// ComparePair runs the comparator on two submissions and attaches the
// pair's identity in canonical order (smaller submission id first). The
// comparator itself is symmetric, so the ordering only affects labels.
func ComparePair(a, b *types.Submission) PairwiseComparison {
	return comparePairWith(Compare, a, b)
}

func comparePairWith(compare func(string, string, bool) PairwiseComparison, a, b *types.Submission) PairwiseComparison {
	if b.ID < a.ID {
		a, b = b, a
	}

	comparison := compare(a.Text, b.Text, a.HasFiles() && b.HasFiles())
	comparison.SubmissionA = a.ID
	comparison.SubmissionB = b.ID
	comparison.StudentA = a.StudentName
	comparison.StudentB = b.StudentName
	return comparison
}
