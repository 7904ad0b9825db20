package insights

import (
	"context"

	"resume-matcher/internal/matching"
)

// RecordLister lists a resume's match records.
type RecordLister interface {
	ListByResume(ctx context.Context, resumeID string) ([]matching.Record, error)
}

// Service computes insights for one resume.
type Service struct {
	Records    RecordLister
	Aggregator *Aggregator
}

// ForResume aggregates a resume's current match history.
func (s *Service) ForResume(ctx context.Context, resumeID string) (ResumeInsights, error) {
	records, err := s.Records.ListByResume(ctx, resumeID)
	if err != nil {
		return ResumeInsights{}, err
	}
	out := s.Aggregator.Aggregate(ctx, records)
	out.ResumeID = resumeID
	return out, nil
}
