package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-matcher/internal/textproc"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// GetResume fetches a resume by ID.
func (r *PGRepo) GetResume(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, file_name, mime_type, storage_key, processed, processed_at, created_at
FROM resumes
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	var resume Resume
	var storageKey sql.NullString
	var processed sql.NullString
	var processedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&resume.ID,
		&resume.FileName,
		&resume.MimeType,
		&storageKey,
		&processed,
		&processedAt,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if storageKey.Valid {
		resume.StorageKey = storageKey.String
	}
	if processed.Valid {
		doc, err := decodeProcessed(processed.String)
		if err != nil {
			return Resume{}, fmt.Errorf("resume %s: %w", resumeID, err)
		}
		resume.Processed = doc
	}
	if processedAt.Valid {
		resume.ProcessedAt = &processedAt.Time
	}
	return resume, nil
}

// GetJob fetches a job description by ID.
func (r *PGRepo) GetJob(ctx context.Context, jobID string) (Job, error) {
	const query = `
SELECT id, title, company, description, processed, created_at
FROM job_descriptions
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	var job Job
	var company sql.NullString
	var processed sql.NullString
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&company,
		&job.Description,
		&processed,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if company.Valid {
		job.Company = company.String
	}
	if processed.Valid {
		doc, err := decodeProcessed(processed.String)
		if err != nil {
			return Job{}, fmt.Errorf("job %s: %w", jobID, err)
		}
		job.Processed = doc
	}
	return job, nil
}

// SaveResumeProcessed stores the processed text unless one is already recorded.
func (r *PGRepo) SaveResumeProcessed(ctx context.Context, resumeID string, doc textproc.ProcessedDocument) error {
	const query = `
UPDATE resumes
SET processed = $1, processed_at = $2
WHERE id = $3 AND processed IS NULL`
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, payload, time.Now().UTC(), resumeID)
	return err
}

// SaveJobProcessed stores the processed description unless one is already recorded.
func (r *PGRepo) SaveJobProcessed(ctx context.Context, jobID string, doc textproc.ProcessedDocument) error {
	const query = `
UPDATE job_descriptions
SET processed = $1
WHERE id = $2 AND processed IS NULL`
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, payload, jobID)
	return err
}

func decodeProcessed(raw string) (*textproc.ProcessedDocument, error) {
	var doc textproc.ProcessedDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode processed document: %w", err)
	}
	return &doc, nil
}

var _ Repo = (*PGRepo)(nil)
