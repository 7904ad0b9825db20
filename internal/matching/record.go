package matching

import (
	"time"

	"github.com/google/uuid"
)

// BuildRecord assembles a persistable record from a fused analysis. It has no side effects.
func BuildRecord(resumeID, jobID string, analysis MatchAnalysis, now time.Time) Record {
	return Record{
		ID:        uuid.NewString(),
		ResumeID:  resumeID,
		JobID:     jobID,
		Score:     analysis.CombinedScore,
		Details:   cloneAnalysis(analysis),
		CreatedAt: now.UTC(),
	}
}

func cloneAnalysis(a MatchAnalysis) MatchAnalysis {
	out := a
	out.Lexical.MatchedKeywords = cloneStrings(a.Lexical.MatchedKeywords)
	out.Lexical.MissingKeywords = cloneStrings(a.Lexical.MissingKeywords)
	out.Lexical.Strengths = cloneStrings(a.Lexical.Strengths)
	out.Lexical.Recommendations = cloneStrings(a.Lexical.Recommendations)
	out.Semantic.Strengths = cloneStrings(a.Semantic.Strengths)
	out.Semantic.Gaps = cloneStrings(a.Semantic.Gaps)
	out.Insights.TopStrengths = cloneStrings(a.Insights.TopStrengths)
	out.Insights.CriticalGaps = cloneStrings(a.Insights.CriticalGaps)
	out.Insights.Recommendations = cloneStrings(a.Insights.Recommendations)
	return out
}

func cloneStrings(items []string) []string {
	if items == nil {
		return nil
	}
	return append(make([]string, 0, len(items)), items...)
}
