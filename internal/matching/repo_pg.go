package matching

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Save inserts a new match record.
func (r *PGRepo) Save(ctx context.Context, record Record) (Record, error) {
	const query = `
INSERT INTO match_records (id, resume_id, job_id, score, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	details, err := json.Marshal(record.Details)
	if err != nil {
		return Record{}, err
	}
	if _, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.ResumeID,
		record.JobID,
		record.Score,
		details,
		record.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	return record, nil
}

// ListByResume returns a resume's records, newest first.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Record, error) {
	const query = `
SELECT id, resume_id, job_id, score, details, created_at
FROM match_records
WHERE resume_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByJob returns a job's records ordered by score, highest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string, limit int) ([]Record, error) {
	const query = `
SELECT id, resume_id, job_id, score, details, created_at
FROM match_records
WHERE job_id = $1
ORDER BY score DESC, created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, jobID, jobListLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Delete removes a record by ID.
func (r *PGRepo) Delete(ctx context.Context, recordID string) error {
	const query = `DELETE FROM match_records WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, recordID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	out := []Record{}
	for rows.Next() {
		var rec Record
		var details []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.ResumeID,
			&rec.JobID,
			&rec.Score,
			&details,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &rec.Details); err != nil {
				return nil, fmt.Errorf("decode match record %s: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
