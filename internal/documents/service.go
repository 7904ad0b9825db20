package documents

import (
	"context"
	"fmt"
	"strings"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/storage/object"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/textproc"
)

// Service turns stored resume files and job descriptions into processed documents.
type Service struct {
	Store object.Reader
	Repo  Repo
}

// ProcessResume extracts and processes a resume's stored file. A resume that is
// already processed is returned unchanged.
func (s *Service) ProcessResume(ctx context.Context, resumeID string) (Resume, error) {
	if strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrInvalidInput
	}
	resume, err := s.Repo.GetResume(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if resume.Processed != nil {
		return resume, nil
	}
	if s.Store == nil || resume.StorageKey == "" {
		return Resume{}, fmt.Errorf("resume %s has no stored file: %w", resumeID, object.ErrNotFound)
	}

	raw, err := extract.ExtractText(ctx, s.Store, resume.StorageKey, resume.MimeType, resume.FileName)
	if err != nil {
		telemetry.Error("documents.extract_failed", map[string]any{
			"resume_id": resumeID,
			"mime_type": resume.MimeType,
			"error":     err.Error(),
		})
		return Resume{}, err
	}

	doc := textproc.Process(raw)
	if !doc.HasText() {
		telemetry.Error("documents.extract_empty", map[string]any{
			"resume_id": resumeID,
			"mime_type": resume.MimeType,
		})
		return Resume{}, fmt.Errorf("resume %s has no usable text: %w", resumeID, extract.ErrExtractionFailed)
	}
	if err := s.Repo.SaveResumeProcessed(ctx, resumeID, doc); err != nil {
		return Resume{}, err
	}
	telemetry.Info("documents.resume_processed", map[string]any{
		"resume_id":  resumeID,
		"word_count": doc.WordCount,
		"keywords":   len(doc.Keywords),
		"sections":   len(doc.Sections),
	})

	// Re-read so a concurrent first writer wins.
	return s.Repo.GetResume(ctx, resumeID)
}

// ProcessJob normalizes a job description and stores the result once.
func (s *Service) ProcessJob(ctx context.Context, jobID string) (Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return Job{}, ErrInvalidInput
	}
	job, err := s.Repo.GetJob(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if job.Processed != nil {
		return job, nil
	}
	if strings.TrimSpace(job.Description) == "" {
		return Job{}, fmt.Errorf("job %s has no description: %w", jobID, ErrInvalidInput)
	}

	doc := textproc.Process(job.Description)
	if err := s.Repo.SaveJobProcessed(ctx, jobID, doc); err != nil {
		return Job{}, err
	}
	return s.Repo.GetJob(ctx, jobID)
}
