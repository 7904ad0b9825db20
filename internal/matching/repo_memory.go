package matching

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores match records in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Save stores a copy of the record.
func (r *MemoryRepo) Save(ctx context.Context, record Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	stored := record
	stored.Details = cloneAnalysis(record.Details)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, stored)
	return record, nil
}

// ListByResume returns a resume's records, newest first.
func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(func(rec Record) bool { return rec.ResumeID == resumeID })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListByJob returns a job's records ordered by score, highest first.
func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.filter(func(rec Record) bool { return rec.JobID == jobID })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit = jobListLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a record by ID.
func (r *MemoryRepo) Delete(ctx context.Context, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == recordID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) filter(keep func(Record) bool) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0)
	for _, rec := range r.records {
		if keep(rec) {
			rec.Details = cloneAnalysis(rec.Details)
			out = append(out, rec)
		}
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
