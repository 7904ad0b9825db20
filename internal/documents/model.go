package documents

import (
	"errors"
	"time"

	"resume-matcher/internal/textproc"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Resume is an uploaded resume. Processed is nil until text extraction has run.
type Resume struct {
	ID          string
	FileName    string
	MimeType    string
	StorageKey  string
	Processed   *textproc.ProcessedDocument
	ProcessedAt *time.Time
	CreatedAt   time.Time
}

// Job is a job posting with its free-text description.
type Job struct {
	ID          string
	Title       string
	Company     string
	Description string
	Processed   *textproc.ProcessedDocument
	CreatedAt   time.Time
}

// Text returns the job's normalized text, falling back to its raw description.
func (j Job) Text() string {
	if j.Processed.HasText() {
		return j.Processed.Text
	}
	return textproc.Normalize(j.Description)
}
