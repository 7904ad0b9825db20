package matching

import (
	"fmt"
	"math"
	"strings"

	"resume-matcher/internal/textproc"
)

const (
	maxMissingKeywords = 10
	maxNarrativeItems  = 5
	maxListedTerms     = 5
)

// ScoreTexts extracts keywords from both normalized texts and scores them.
func ScoreTexts(resumeText, jobText string) LexicalAnalysis {
	return ScoreKeywords(textproc.ExtractKeywords(resumeText), textproc.ExtractKeywords(jobText))
}

// ScoreKeywords computes the Jaccard similarity of two keyword sets on a 0-100 scale.
// Matched and missing keywords follow the job's keyword order.
func ScoreKeywords(resumeKeywords, jobKeywords []string) LexicalAnalysis {
	resume := keywordSet(resumeKeywords)
	job := keywordSet(jobKeywords)

	inResume := make(map[string]bool, len(resume))
	for _, kw := range resume {
		inResume[kw] = true
	}

	matched := make([]string, 0, len(job))
	missing := make([]string, 0, len(job))
	for _, kw := range job {
		if inResume[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	union := len(resume) + len(job) - len(matched)
	score := 0
	if union > 0 {
		score = int(math.Round(float64(len(matched)) / float64(union) * 100))
	}

	strengths := lexicalStrengths(matched, len(job))
	recommendations := lexicalRecommendations(missing)
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}

	return LexicalAnalysis{
		Score:           score,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Strengths:       strengths,
		Recommendations: recommendations,
	}
}

// keywordSet lower-cases and de-duplicates keywords, keeping first-seen order.
func keywordSet(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

type categorized struct {
	byCategory map[textproc.Category][]string
	other      []string
}

func categorize(keywords []string) categorized {
	out := categorized{byCategory: make(map[textproc.Category][]string)}
	for _, kw := range keywords {
		if cat, ok := textproc.CategoryOf(kw); ok {
			out.byCategory[cat] = append(out.byCategory[cat], kw)
			continue
		}
		out.other = append(out.other, kw)
	}
	return out
}

func lexicalStrengths(matched []string, jobSize int) []string {
	if len(matched) == 0 {
		return []string{}
	}
	groups := categorize(matched)
	out := []string{fmt.Sprintf("Matches %d of %d key terms from the job description", len(matched), jobSize)}

	templates := []struct {
		category textproc.Category
		format   string
	}{
		{textproc.CategoryLanguage, "Proficient in required programming languages: %s"},
		{textproc.CategoryTechnology, "Hands-on experience with required technologies: %s"},
		{textproc.CategorySoftSkill, "Demonstrates soft skills the role asks for: %s"},
		{textproc.CategoryJobTitle, "Background aligns with the target role: %s"},
	}
	for _, tpl := range templates {
		if terms := groups.byCategory[tpl.category]; len(terms) > 0 {
			out = append(out, fmt.Sprintf(tpl.format, joinTerms(terms)))
		}
	}
	return capList(out, maxNarrativeItems)
}

func lexicalRecommendations(missing []string) []string {
	if len(missing) == 0 {
		return []string{}
	}
	groups := categorize(missing)
	out := make([]string, 0, maxNarrativeItems)

	templates := []struct {
		category textproc.Category
		format   string
	}{
		{textproc.CategoryLanguage, "Add or highlight experience with these languages: %s"},
		{textproc.CategoryTechnology, "Gain exposure to technologies the role requires: %s"},
		{textproc.CategorySoftSkill, "Show concrete evidence of: %s"},
		{textproc.CategoryJobTitle, "Frame your experience toward the target role: %s"},
	}
	for _, tpl := range templates {
		if terms := groups.byCategory[tpl.category]; len(terms) > 0 {
			out = append(out, fmt.Sprintf(tpl.format, joinTerms(terms)))
		}
	}
	if len(groups.other) > 0 {
		out = append(out, fmt.Sprintf("Mention these job terms where they honestly apply: %s", joinTerms(groups.other)))
	}
	return capList(out, maxNarrativeItems)
}

func joinTerms(terms []string) string {
	return strings.Join(capList(terms, maxListedTerms), ", ")
}

func capList(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
