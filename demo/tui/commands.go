package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"simscreen/similarity"
	"simscreen/types"
)

// loadSubmissions reads every .txt and .md file in dir as one submission,
// using the file name stem as both submission id and student name.
func loadSubmissions(dir string) tea.Cmd {
	return func() tea.Msg {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return SubmissionsLoadedMsg{Err: fmt.Errorf("failed to read %s: %w", dir, err)}
		}

		var submissions []*types.Submission
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".txt" && ext != ".md" {
				continue
			}

			data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return SubmissionsLoadedMsg{Err: fmt.Errorf("failed to read %s: %w", entry.Name(), err)}
			}

			stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			submissions = append(submissions, &types.Submission{
				ID:                stem,
				StudentName:       stem,
				SubmissionContent: types.SubmissionContent{Text: string(data)},
			})
		}

		if len(submissions) < 2 {
			return SubmissionsLoadedMsg{Err: fmt.Errorf("need at least 2 submissions in %s, found %d", dir, len(submissions))}
		}
		return SubmissionsLoadedMsg{Submissions: submissions}
	}
}

// runScan runs the all-pairs cohort scan
func runScan(scanner *similarity.Scanner, submissions []*types.Submission) tea.Cmd {
	return func() tea.Msg {
		results, err := scanner.Scan(context.Background(), submissions)
		if err != nil {
			return ScanCompleteMsg{Results: results, Partial: true}
		}
		return ScanCompleteMsg{Results: results}
	}
}
