package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/semantic"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/textproc"
)

const (
	defaultSemanticTimeout = 30 * time.Second
	defaultJobListLimit    = 20
	maxJobListLimit        = 100
)

// Sample texts used to probe the semantic provider.
const (
	sampleResumeText = "Senior backend engineer with six years of Go and Python experience building REST APIs on AWS with Docker and PostgreSQL. Led a team of four engineers."
	sampleJobText    = "We are hiring a backend engineer to design Go microservices on AWS. Experience with Docker, Kubernetes and PostgreSQL is required."
)

// ResumeProcessor turns a stored resume file into processed text on demand.
type ResumeProcessor interface {
	ProcessResume(ctx context.Context, resumeID string) (documents.Resume, error)
}

// Service runs resume/job matches and manages their records.
type Service struct {
	Repo Repo
	Docs documents.Repo

	// Processor is used only when AutoProcess is set.
	Processor   ResumeProcessor
	AutoProcess bool

	Semantic        semantic.Provider
	SemanticTimeout time.Duration

	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Match scores a resume against a job and persists the resulting record.
// Semantic provider failures never fail the match; they degrade it to lexical only.
func (s *Service) Match(ctx context.Context, resumeID, jobID string) (Record, error) {
	resumeID = strings.TrimSpace(resumeID)
	jobID = strings.TrimSpace(jobID)
	if resumeID == "" || jobID == "" {
		return Record{}, fmt.Errorf("resumeId and jobId are required: %w", ErrInvalidInput)
	}

	metrics.IncMatchStarted()
	start := s.now()
	record, err := s.match(ctx, resumeID, jobID, start)
	if err != nil {
		metrics.IncMatchFailed()
		telemetry.Error("matching.failed", map[string]any{
			"resume_id": resumeID,
			"job_id":    jobID,
			"error":     err.Error(),
		})
		return Record{}, err
	}

	elapsed := s.now().Sub(start)
	metrics.IncMatchCompleted()
	metrics.ObserveMatchDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("matching.completed", map[string]any{
		"match_id":         record.ID,
		"resume_id":        resumeID,
		"job_id":           jobID,
		"score":            record.Score,
		"semantic_enabled": record.Details.Metadata.SemanticEnabled,
		"duration_ms":      elapsed.Milliseconds(),
	})
	return record, nil
}

func (s *Service) match(ctx context.Context, resumeID, jobID string, start time.Time) (Record, error) {
	resume, err := s.loadResume(ctx, resumeID)
	if err != nil {
		return Record{}, err
	}
	job, err := s.Docs.GetJob(ctx, jobID)
	if err != nil {
		return Record{}, documentError(err, "job", jobID)
	}
	jobText := job.Text()
	if jobText == "" {
		return Record{}, fmt.Errorf("job %s has no description: %w", jobID, ErrMissingPrerequisite)
	}
	jobKeywords := textproc.ExtractKeywords(jobText)
	if job.Processed.HasText() {
		jobKeywords = job.Processed.Keywords
	}

	lexical := ScoreKeywords(resume.Processed.Keywords, jobKeywords)
	sem := s.analyze(ctx, resume.Processed.Text, jobText)

	analysis := Fuse(lexical, sem)
	analysis.Metadata.ProcessingTimeMs = s.now().Sub(start).Milliseconds()

	record := BuildRecord(resumeID, jobID, analysis, s.now())
	return s.Repo.Save(ctx, record)
}

// Preview runs the lexical and semantic stages on raw texts and stores nothing.
func (s *Service) Preview(ctx context.Context, resumeText, jobText string) MatchAnalysis {
	start := s.now()
	resume := textproc.Process(resumeText)
	job := textproc.Process(jobText)

	analysis := Fuse(ScoreKeywords(resume.Keywords, job.Keywords), s.analyze(ctx, resume.Text, job.Text))
	analysis.Metadata.ProcessingTimeMs = s.now().Sub(start).Milliseconds()
	return analysis
}

func (s *Service) loadResume(ctx context.Context, resumeID string) (documents.Resume, error) {
	resume, err := s.Docs.GetResume(ctx, resumeID)
	if err != nil {
		return documents.Resume{}, documentError(err, "resume", resumeID)
	}
	if resume.Processed.HasText() {
		return resume, nil
	}
	if !s.AutoProcess || s.Processor == nil {
		return documents.Resume{}, fmt.Errorf("resume %s has not been processed: %w", resumeID, ErrMissingPrerequisite)
	}

	resume, err = s.Processor.ProcessResume(ctx, resumeID)
	if err != nil {
		return documents.Resume{}, documentError(err, "resume", resumeID)
	}
	if !resume.Processed.HasText() {
		return documents.Resume{}, fmt.Errorf("resume %s has no extractable text: %w", resumeID, ErrMissingPrerequisite)
	}
	return resume, nil
}

// analyze returns nil when the provider fails, panics or runs past the timeout.
func (s *Service) analyze(ctx context.Context, resumeText, jobText string) *SemanticAnalysis {
	if s.Semantic == nil {
		s.fallback("not_configured", semantic.ErrNotConfigured)
		return nil
	}
	timeout := s.SemanticTimeout
	if timeout <= 0 {
		timeout = defaultSemanticTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		analysis SemanticAnalysis
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("semantic provider panic: %v", r)}
			}
		}()
		analysis, err := s.Semantic.Analyze(ctx, resumeText, jobText)
		done <- outcome{analysis: analysis, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			s.fallback(fallbackReason(out.err), out.err)
			return nil
		}
		return &out.analysis
	case <-ctx.Done():
		s.fallback(fallbackReason(ctx.Err()), ctx.Err())
		return nil
	}
}

func (s *Service) fallback(reason string, err error) {
	metrics.IncSemanticFallback()
	telemetry.Info("matching.semantic_fallback", map[string]any{
		"reason": reason,
		"error":  err.Error(),
	})
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, semantic.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, semantic.ErrInvalidResponse):
		return "invalid_response"
	default:
		return "provider_error"
	}
}

// MatchBatch matches pairs one at a time in input order. A failed pair is
// recorded and the batch moves on.
func (s *Service) MatchBatch(ctx context.Context, pairs []Pair) BatchResult {
	result := BatchResult{
		Successes: make([]Record, 0, len(pairs)),
		Failures:  []BatchFailure{},
	}

	// The limit of one serializes the pairs, so the appends below never race.
	var g errgroup.Group
	g.SetLimit(1)
	for _, pair := range pairs {
		g.Go(func() error {
			record, err := s.Match(ctx, pair.ResumeID, pair.JobID)
			if err != nil {
				metrics.IncBatchItemFailed()
				result.Failures = append(result.Failures, BatchFailure{
					ResumeID: pair.ResumeID,
					JobID:    pair.JobID,
					Error:    err.Error(),
					Err:      fmt.Errorf("%w: %w", ErrBatchItemFailed, err),
				})
				return nil
			}
			result.Successes = append(result.Successes, record)
			return nil
		})
	}
	_ = g.Wait()

	telemetry.Info("matching.batch_completed", map[string]any{
		"pairs":     len(pairs),
		"successes": len(result.Successes),
		"failures":  len(result.Failures),
	})
	return result
}

// TestSemantic runs the underlying provider once against sample texts, skipping
// the cache and retry layers. Errors are returned as is.
func (s *Service) TestSemantic(ctx context.Context) (SemanticAnalysis, error) {
	if s.Semantic == nil {
		return SemanticAnalysis{}, semantic.ErrNotConfigured
	}
	return semantic.Base(s.Semantic).Analyze(ctx, sampleResumeText, sampleJobText)
}

// ListByResume returns a resume's match history, newest first.
func (s *Service) ListByResume(ctx context.Context, resumeID string) ([]Record, error) {
	if strings.TrimSpace(resumeID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByResume(ctx, resumeID)
}

// ListByJob returns the best matches for a job.
func (s *Service) ListByJob(ctx context.Context, jobID string, limit int) ([]Record, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByJob(ctx, jobID, jobListLimit(limit))
}

// Delete removes one match record.
func (s *Service) Delete(ctx context.Context, recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, recordID)
}

func jobListLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultJobListLimit
	case limit > maxJobListLimit:
		return maxJobListLimit
	default:
		return limit
	}
}

func documentError(err error, kind, id string) error {
	switch {
	case errors.Is(err, documents.ErrNotFound):
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	case errors.Is(err, documents.ErrInvalidInput):
		return fmt.Errorf("%s %s: %w", kind, id, ErrInvalidInput)
	default:
		return err
	}
}
