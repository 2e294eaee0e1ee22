package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"simscreen/similarity"
	"simscreen/types"
)

// State represents the application state machine
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateScanning State = "scanning"
	StateComplete State = "complete"
	StateError    State = "error"
)

// Model represents the cohort scan demo state
type Model struct {
	// Directory of submission text files, one submission per file
	Dir string

	State       State
	Submissions []*types.Submission
	Results     []similarity.PairwiseComparison
	Partial     bool
	Logs        []string
	Err         error

	scanner *similarity.Scanner
}

// NewModel creates a new TUI model over the given submissions directory.
func NewModel(dir string) Model {
	return Model{
		Dir:     dir,
		State:   StateIdle,
		Logs:    make([]string, 0),
		scanner: similarity.NewScanner(similarity.ScannerConfig{}),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// AddLog appends a log line, keeping only the most recent entries
func (m Model) AddLog(msg string) Model {
	m.Logs = append(m.Logs, msg)
	if len(m.Logs) > 8 {
		m.Logs = m.Logs[len(m.Logs)-8:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("Ready to scan") + "\n\n" +
			InfoStyle.Render(fmt.Sprintf("Press 's' to scan submissions in %s", m.Dir))
	case StateLoading:
		return StatusStyle.Render("Loading submissions...")
	case StateScanning:
		return StatusStyle.Render(fmt.Sprintf("Comparing %d submissions pairwise...", len(m.Submissions)))
	case StateComplete:
		label := "COMPLETE"
		if m.Partial {
			label = "COMPLETE (partial, scan was cancelled)"
		}
		return HighlightStyle.Render(label)
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", errMsg))
	default:
		return ""
	}
}
