package tui

import (
	"fmt"
	"strings"
)

// maxDisplayedPairs caps the ranked list shown in the results box.
const maxDisplayedPairs = 15

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("Submission Similarity Scan"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Statistics
	if len(m.Submissions) > 0 {
		stats := fmt.Sprintf("Submissions loaded: %d", len(m.Submissions))
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n")
	}

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("Recent activity:"))
		b.WriteString("\n")
		for _, logMsg := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + logMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Results
	if m.State == StateComplete {
		b.WriteString(BoxStyle.Render(m.formatResults()))
		b.WriteString("\n\n")
	}

	// Help text
	if m.State == StateIdle {
		b.WriteString(InfoStyle.Render("Press 's' to scan | Press 'q' or Ctrl+C to quit"))
	} else if m.State == StateComplete || m.State == StateError {
		b.WriteString(InfoStyle.Render("Press 's' to scan again | Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}

// formatResults renders the ranked flagged pairs
func (m Model) formatResults() string {
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Ranked Similarity Pairs"))
	b.WriteString("\n\n")

	if len(m.Results) == 0 {
		b.WriteString(InfoStyle.Render("No overlapping pairs found"))
		return b.String()
	}

	shown := m.Results
	if len(shown) > maxDisplayedPairs {
		shown = shown[:maxDisplayedPairs]
	}

	for i, pair := range shown {
		line := fmt.Sprintf("%2d. %s vs %s: %.2f%%", i+1, pair.SubmissionA, pair.SubmissionB, pair.Similarity)
		switch {
		case pair.Similarity >= 75:
			b.WriteString(ErrorStyle.Render(line))
		case pair.Similarity >= 40:
			b.WriteString(WarningStyle.Render(line))
		default:
			b.WriteString(StatusStyle.Render(line))
		}
		b.WriteString("\n")

		if pair.PhraseMatchCount > 0 {
			detail := fmt.Sprintf("    %d shared phrases, e.g. %q", pair.PhraseMatchCount, pair.MatchedPhrases[0])
			b.WriteString(InfoStyle.Render(detail))
			b.WriteString("\n")
		}
	}

	if len(m.Results) > maxDisplayedPairs {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("    ... and %d more pairs", len(m.Results)-maxDisplayedPairs)))
		b.WriteString("\n")
	}

	return b.String()
}
