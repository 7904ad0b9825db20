package matching

import (
	"time"

	"resume-matcher/internal/semantic"
)

// Confidence grades how much the combined score can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// LexicalAnalysis is the keyword-overlap view of a match.
type LexicalAnalysis struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// SemanticAnalysis is consumed as returned by the semantic provider.
type SemanticAnalysis = semantic.Analysis

// Insights is the merged narrative of a match.
type Insights struct {
	TopStrengths    []string   `json:"topStrengths"`
	CriticalGaps    []string   `json:"criticalGaps"`
	Recommendations []string   `json:"recommendations"`
	Assessment      string     `json:"assessment"`
	Confidence      Confidence `json:"confidence"`
}

type Metadata struct {
	ProcessingTimeMs int64 `json:"processingTimeMs"`
	SemanticEnabled  bool  `json:"semanticEnabled"`
	LexicalScore     int   `json:"lexicalScore"`
	SemanticScore    int   `json:"semanticScore"`
}

// MatchAnalysis is the fused result of one resume/job comparison.
type MatchAnalysis struct {
	CombinedScore int              `json:"combinedScore"`
	Lexical       LexicalAnalysis  `json:"lexical"`
	Semantic      SemanticAnalysis `json:"semantic"`
	Insights      Insights         `json:"insights"`
	Metadata      Metadata         `json:"metadata"`
}

// Record is the persisted, immutable outcome of one match.
type Record struct {
	ID        string        `json:"id"`
	ResumeID  string        `json:"resumeId"`
	JobID     string        `json:"jobId"`
	Score     int           `json:"score"`
	Details   MatchAnalysis `json:"details"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Pair names one resume/job combination of a batch.
type Pair struct {
	ResumeID string `json:"resumeId"`
	JobID    string `json:"jobId"`
}

// BatchFailure describes one pair that could not be matched.
type BatchFailure struct {
	ResumeID string `json:"resumeId"`
	JobID    string `json:"jobId"`
	Error    string `json:"error"`
	Err      error  `json:"-"`
}

// BatchResult holds successes in input order and the failed pairs.
type BatchResult struct {
	Successes []Record       `json:"successes"`
	Failures  []BatchFailure `json:"failures"`
}
