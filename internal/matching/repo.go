package matching

import "context"

// Repo persists match records. Records are never updated in place.
type Repo interface {
	Save(ctx context.Context, record Record) (Record, error)
	ListByResume(ctx context.Context, resumeID string) ([]Record, error)
	ListByJob(ctx context.Context, jobID string, limit int) ([]Record, error)
	Delete(ctx context.Context, recordID string) error
}
