package documents

import (
	"context"
	"sync"
	"time"

	"resume-matcher/internal/textproc"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
	jobs    map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		resumes: make(map[string]Resume),
		jobs:    make(map[string]Job),
	}
}

// AddResume stores or replaces a resume.
func (r *MemoryRepo) AddResume(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if resume.ID == "" {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

// AddJob stores or replaces a job.
func (r *MemoryRepo) AddJob(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if job.ID == "" {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
	return nil
}

// GetResume returns a resume by ID.
func (r *MemoryRepo) GetResume(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// GetJob returns a job by ID.
func (r *MemoryRepo) GetJob(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// SaveResumeProcessed records the processed text once; later calls keep the first result.
func (r *MemoryRepo) SaveResumeProcessed(ctx context.Context, resumeID string, doc textproc.ProcessedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[resumeID]
	if !ok {
		return ErrNotFound
	}
	if resume.Processed == nil {
		now := time.Now().UTC()
		resume.Processed = &doc
		resume.ProcessedAt = &now
		r.resumes[resumeID] = resume
	}
	return nil
}

// SaveJobProcessed records the processed description once.
func (r *MemoryRepo) SaveJobProcessed(ctx context.Context, jobID string, doc textproc.ProcessedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	if job.Processed == nil {
		job.Processed = &doc
		r.jobs[jobID] = job
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
