package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case SubmissionsLoadedMsg:
		return m.handleSubmissionsLoaded(msg)
	case ScanCompleteMsg:
		return m.handleScanComplete(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		if m.State == StateIdle || m.State == StateComplete || m.State == StateError {
			m.State = StateLoading
			m.Err = nil
			m.Results = nil
			m.Partial = false
			m = m.AddLog(fmt.Sprintf("Loading submissions from %s...", m.Dir))
			return m, loadSubmissions(m.Dir)
		}
	}
	return m, nil
}

// handleSubmissionsLoaded processes the loaded cohort
func (m Model) handleSubmissionsLoaded(msg SubmissionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Submissions = msg.Submissions
	m.State = StateScanning
	m = m.AddLog(fmt.Sprintf("Loaded %d submissions", len(msg.Submissions)))
	return m, runScan(m.scanner, msg.Submissions)
}

// handleScanComplete processes the ranked scan results
func (m Model) handleScanComplete(msg ScanCompleteMsg) (tea.Model, tea.Cmd) {
	m.Results = msg.Results
	m.Partial = msg.Partial
	m.State = StateComplete
	m = m.AddLog(fmt.Sprintf("Scan finished: %d flagged pairs", len(msg.Results)))
	return m, nil
}
