package insights

import (
	"context"
	"math"
	"sort"
	"strings"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/shared/telemetry"
)

const (
	DefaultSeniorThreshold   = 75
	DefaultTargetedThreshold = 50

	maxCommonTerms = 5
	maxNextSteps   = 5
)

// NoMatchesRecommendation is the only recommendation of a resume without matches.
const NoMatchesRecommendation = "Match this resume against a few job descriptions to unlock personalized insights."

// BestMatch is the highest scoring record of a resume.
type BestMatch struct {
	MatchID  string `json:"matchId"`
	JobID    string `json:"jobId"`
	Score    int    `json:"score"`
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
}

// ResumeInsights summarizes a resume's match history. It is recomputed on every request.
type ResumeInsights struct {
	ResumeID              string     `json:"resumeId,omitempty"`
	TotalMatches          int        `json:"totalMatches"`
	AverageScore          int        `json:"averageScore"`
	BestMatch             *BestMatch `json:"bestMatch"`
	CommonStrengths       []string   `json:"commonStrengths"`
	ImprovementAreas      []string   `json:"improvementAreas"`
	CareerRecommendations []string   `json:"careerRecommendations"`
	NextSteps             []string   `json:"nextSteps"`
}

// JobLookup resolves job details for the best match.
type JobLookup interface {
	GetJob(ctx context.Context, jobID string) (documents.Job, error)
}

// Aggregator derives ResumeInsights from match records.
type Aggregator struct {
	SeniorThreshold   int
	TargetedThreshold int
	Jobs              JobLookup
}

// NewAggregator constructs an Aggregator. Non-positive thresholds fall back to the defaults.
func NewAggregator(seniorThreshold, targetedThreshold int, jobs JobLookup) *Aggregator {
	if seniorThreshold <= 0 {
		seniorThreshold = DefaultSeniorThreshold
	}
	if targetedThreshold <= 0 {
		targetedThreshold = DefaultTargetedThreshold
	}
	return &Aggregator{
		SeniorThreshold:   seniorThreshold,
		TargetedThreshold: targetedThreshold,
		Jobs:              jobs,
	}
}

// Aggregate summarizes records. It never fails; job lookup errors only leave
// the best match without a title.
func (a *Aggregator) Aggregate(ctx context.Context, records []matching.Record) ResumeInsights {
	if len(records) == 0 {
		return ResumeInsights{
			CommonStrengths:       []string{},
			ImprovementAreas:      []string{},
			CareerRecommendations: []string{NoMatchesRecommendation},
			NextSteps:             []string{},
		}
	}

	total := 0
	best := records[0]
	for _, rec := range records {
		total += rec.Score
		if rec.Score > best.Score || (rec.Score == best.Score && rec.CreatedAt.After(best.CreatedAt)) {
			best = rec
		}
	}
	average := int(math.Round(float64(total) / float64(len(records))))

	strengths := commonTerms(records, func(r matching.Record) []string { return r.Details.Insights.TopStrengths })
	gaps := commonTerms(records, func(r matching.Record) []string { return r.Details.Insights.CriticalGaps })

	return ResumeInsights{
		TotalMatches:          len(records),
		AverageScore:          average,
		BestMatch:             a.bestMatch(ctx, best),
		CommonStrengths:       strengths,
		ImprovementAreas:      gaps,
		CareerRecommendations: a.careerRecommendations(average),
		NextSteps:             a.nextSteps(average, gaps),
	}
}

func (a *Aggregator) bestMatch(ctx context.Context, rec matching.Record) *BestMatch {
	out := &BestMatch{MatchID: rec.ID, JobID: rec.JobID, Score: rec.Score}
	if a.Jobs == nil {
		return out
	}
	job, err := a.Jobs.GetJob(ctx, rec.JobID)
	if err != nil {
		telemetry.Error("insights.job_lookup_failed", map[string]any{
			"job_id": rec.JobID,
			"error":  err.Error(),
		})
		return out
	}
	out.JobTitle = job.Title
	out.Company = job.Company
	return out
}

// commonTerms returns terms found in at least ceil(0.3*n) records, most frequent first.
// A term counts once per record regardless of case.
func commonTerms(records []matching.Record, terms func(matching.Record) []string) []string {
	type entry struct {
		term  string
		count int
		order int
	}
	byKey := make(map[string]*entry)
	for _, rec := range records {
		seen := make(map[string]bool)
		for _, term := range terms(rec) {
			term = strings.TrimSpace(term)
			key := strings.ToLower(term)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if e, ok := byKey[key]; ok {
				e.count++
				continue
			}
			byKey[key] = &entry{term: term, count: 1, order: len(byKey)}
		}
	}

	threshold := (3*len(records) + 9) / 10
	qualified := make([]*entry, 0, len(byKey))
	for _, e := range byKey {
		if e.count >= threshold {
			qualified = append(qualified, e)
		}
	}
	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].count != qualified[j].count {
			return qualified[i].count > qualified[j].count
		}
		return qualified[i].order < qualified[j].order
	})

	out := make([]string, 0, maxCommonTerms)
	for _, e := range qualified {
		if len(out) == maxCommonTerms {
			break
		}
		out = append(out, e.term)
	}
	return out
}

func (a *Aggregator) careerRecommendations(average int) []string {
	switch {
	case average >= a.SeniorThreshold:
		return []string{
			"Your resume is a strong fit for the roles you target; consider senior or lead positions.",
			"Highlight measurable impact and leadership to stand out among senior candidates.",
		}
	case average >= a.TargetedThreshold:
		return []string{
			"You meet a solid share of the requirements; closing the recurring gaps will make you a strong candidate.",
			"Tailor your resume to each job description and mirror its key terms where they honestly apply.",
		}
	default:
		return []string{
			"Your resume covers few of the requirements of the jobs you target; focus on building foundational skills first.",
			"Consider roles closer to your current experience while you develop the missing skills.",
		}
	}
}

func (a *Aggregator) nextSteps(average int, gaps []string) []string {
	steps := make([]string, 0, maxNextSteps)
	for _, gap := range gaps {
		steps = append(steps, "Add a project, course or certification that demonstrates "+gap+".")
	}
	if len(steps) == 0 {
		if average >= a.SeniorThreshold {
			steps = append(steps, "Keep your resume current and apply to the roles where you match best.")
		} else {
			steps = append(steps, "Compare your resume with the best matching job description and address its missing keywords.")
		}
	}
	if len(steps) > maxNextSteps {
		steps = steps[:maxNextSteps]
	}
	return steps
}
