package tui

import (
	"simscreen/similarity"
	"simscreen/types"
)

// Messages for the tea program

// SubmissionsLoadedMsg is sent when the submissions directory has been read
type SubmissionsLoadedMsg struct {
	Submissions []*types.Submission
	Err         error
}

// ScanCompleteMsg is sent when the cohort scan finishes
type ScanCompleteMsg struct {
	Results []similarity.PairwiseComparison
	Partial bool
	Err     error
}
