package documents

import (
	"context"

	"resume-matcher/internal/textproc"
)

// Repo gives read access to resumes and jobs plus storage of their processed text.
type Repo interface {
	GetResume(ctx context.Context, resumeID string) (Resume, error)
	GetJob(ctx context.Context, jobID string) (Job, error)
	SaveResumeProcessed(ctx context.Context, resumeID string, doc textproc.ProcessedDocument) error
	SaveJobProcessed(ctx context.Context, jobID string, doc textproc.ProcessedDocument) error
}
