package kafka

// SubmissionReceivedEvent is published by the submission workflow once a
// submission row exists durably. The engine consumes it and screens the
// content; the submission write itself never waits on screening.
type SubmissionReceivedEvent struct {
	SubmissionID string   `json:"submission_id"`
	StudentID    string   `json:"student_id"`
	AssignmentID string   `json:"assignment_id"`
	Text         string   `json:"text,omitempty"`
	FileRefs     []string `json:"file_refs,omitempty"`
	Timestamp    int64    `json:"timestamp"`
}

// ScreeningCompletedEvent carries the persistable screening outcome back to
// the submission workflow, which overwrites the plagiarism columns on its
// own record. Re-screening simply produces another event.
type ScreeningCompletedEvent struct {
	SubmissionID      string   `json:"submission_id"`
	PlagiarismScore   *float64 `json:"plagiarism_score"`
	PlagiarismChecked bool     `json:"plagiarism_checked"`
	PlagiarismReport  string   `json:"plagiarism_report"`
}
