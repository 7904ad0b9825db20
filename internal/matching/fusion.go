package matching

import (
	"math"

	"resume-matcher/internal/semantic"
)

// UnavailableAssessment replaces the narrative when semantic analysis is unavailable.
const UnavailableAssessment = "Semantic analysis unavailable; this result is based on keyword matching only."

const (
	highConfidenceScore   = 70
	mediumConfidenceScore = 50
)

// Fuse blends lexical and semantic results into one analysis. A nil semantic
// analysis means the provider was unavailable and the lexical score stands alone.
func Fuse(lexical LexicalAnalysis, sem *SemanticAnalysis) MatchAnalysis {
	enabled := sem != nil

	var s SemanticAnalysis
	if enabled {
		s = SemanticAnalysis{
			MatchScore: clampScore(sem.MatchScore),
			Strengths:  nonNil(sem.Strengths),
			Gaps:       nonNil(sem.Gaps),
			Assessment: sem.Assessment,
		}
	} else {
		s = SemanticAnalysis{
			MatchScore: lexical.Score,
			Strengths:  []string{},
			Gaps:       []string{},
			Assessment: UnavailableAssessment,
		}
	}

	combined := lexical.Score
	if enabled {
		// 0.4*lexical + 0.6*semantic in integer arithmetic; the fraction is never exactly .5.
		combined = int(math.Round(float64(2*lexical.Score+3*s.MatchScore) / 5))
	}

	recommendations := append([]string{}, lexical.Recommendations...)
	for _, gap := range s.Gaps {
		recommendations = append(recommendations, "Consider developing: "+gap)
	}

	return MatchAnalysis{
		CombinedScore: clampScore(combined),
		Lexical:       lexical,
		Semantic:      s,
		Insights: Insights{
			TopStrengths:    firstN(s.Strengths, lexical.Strengths),
			CriticalGaps:    firstN(s.Gaps, lexical.MissingKeywords),
			Recommendations: firstN(recommendations),
			Assessment:      s.Assessment,
			Confidence:      confidenceFor(enabled, s.MatchScore),
		},
		Metadata: Metadata{
			SemanticEnabled: enabled,
			LexicalScore:    lexical.Score,
			SemanticScore:   s.MatchScore,
		},
	}
}

func confidenceFor(enabled bool, semanticScore int) Confidence {
	switch {
	case !enabled:
		return ConfidenceMedium
	case semanticScore >= highConfidenceScore:
		return ConfidenceHigh
	case semanticScore >= mediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// firstN concatenates lists in priority order and keeps the first five entries.
func firstN(lists ...[]string) []string {
	out := make([]string, 0, maxNarrativeItems)
	for _, list := range lists {
		for _, item := range list {
			if len(out) == maxNarrativeItems {
				return out
			}
			out = append(out, item)
		}
	}
	return out
}

func clampScore(v int) int {
	return semantic.ClampScore(float64(v))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return append([]string{}, items...)
}
