package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// SubmissionContent is the screenable part of a submission: optional free
// text plus an ordered list of opaque file references (URIs). A submission
// may carry text only, files only, both, or neither.
type SubmissionContent struct {
	Text     string   `json:"text,omitempty"`
	FileRefs []string `json:"file_refs,omitempty"`
}

// HasText reports whether the submission carries non-blank text.
func (c SubmissionContent) HasText() bool {
	return strings.TrimSpace(c.Text) != ""
}

// HasFiles reports whether the submission carries any file references.
func (c SubmissionContent) HasFiles() bool {
	return len(c.FileRefs) > 0
}

// IsEmpty reports whether there is nothing to screen at all.
func (c SubmissionContent) IsEmpty() bool {
	return !c.HasText() && !c.HasFiles()
}

// Submission is one student's answer to an assignment, as handed to the
// engine by the submission workflow. The engine never persists these.
type Submission struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id,omitempty"`
	StudentName  string    `json:"student_name,omitempty"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at,omitempty"`
	SubmissionContent
}

// GenerateID creates a stable short ID from an arbitrary seed string.
func GenerateID(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(hash[:])[:16]
}
