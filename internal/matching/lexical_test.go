package matching

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestScoreKeywords(t *testing.T) {
	tests := []struct {
		name        string
		resume      []string
		job         []string
		wantScore   int
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "partial overlap",
			resume:      []string{"python", "aws", "docker"},
			job:         []string{"python", "aws", "kubernetes"},
			wantScore:   50,
			wantMatched: []string{"python", "aws"},
			wantMissing: []string{"kubernetes"},
		},
		{
			name:        "disjoint",
			resume:      []string{"java", "spring"},
			job:         []string{"python", "django"},
			wantScore:   0,
			wantMatched: []string{},
			wantMissing: []string{"python", "django"},
		},
		{
			name:        "identical",
			resume:      []string{"go", "redis"},
			job:         []string{"redis", "go"},
			wantScore:   100,
			wantMatched: []string{"redis", "go"},
			wantMissing: []string{},
		},
		{
			name:        "both empty",
			wantScore:   0,
			wantMatched: []string{},
			wantMissing: []string{},
		},
		{
			name:        "case and duplicates",
			resume:      []string{"Python", "python", " AWS "},
			job:         []string{"python", "PYTHON", "aws", "terraform"},
			wantScore:   67,
			wantMatched: []string{"python", "aws"},
			wantMissing: []string{"terraform"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreKeywords(tt.resume, tt.job)
			if got.Score != tt.wantScore {
				t.Fatalf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.MatchedKeywords, tt.wantMatched) {
				t.Fatalf("matched = %v, want %v", got.MatchedKeywords, tt.wantMatched)
			}
			if !reflect.DeepEqual(got.MissingKeywords, tt.wantMissing) {
				t.Fatalf("missing = %v, want %v", got.MissingKeywords, tt.wantMissing)
			}
		})
	}
}

func TestScoreKeywordsNarrative(t *testing.T) {
	got := ScoreKeywords([]string{"python", "aws", "docker"}, []string{"python", "aws", "kubernetes"})

	wantStrengths := []string{
		"Matches 2 of 3 key terms from the job description",
		"Proficient in required programming languages: python",
		"Hands-on experience with required technologies: aws",
	}
	if !reflect.DeepEqual(got.Strengths, wantStrengths) {
		t.Fatalf("strengths = %#v", got.Strengths)
	}
	wantRecs := []string{"Gain exposure to technologies the role requires: kubernetes"}
	if !reflect.DeepEqual(got.Recommendations, wantRecs) {
		t.Fatalf("recommendations = %#v", got.Recommendations)
	}
}

func TestScoreKeywordsDisjointCapsMissing(t *testing.T) {
	job := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		job = append(job, fmt.Sprintf("term%02d", i))
	}
	got := ScoreKeywords([]string{"java"}, job)

	if got.Score != 0 || len(got.MatchedKeywords) != 0 {
		t.Fatalf("expected no overlap, got %#v", got)
	}
	if len(got.MissingKeywords) != maxMissingKeywords || got.MissingKeywords[0] != "term00" || got.MissingKeywords[9] != "term09" {
		t.Fatalf("unexpected missing keywords %v", got.MissingKeywords)
	}
	if len(got.Strengths) != 0 {
		t.Fatalf("expected no strengths, got %v", got.Strengths)
	}
	if len(got.Recommendations) != 1 || !strings.HasPrefix(got.Recommendations[0], "Mention these job terms") {
		t.Fatalf("unexpected recommendations %v", got.Recommendations)
	}
}

func TestScoreKeywordsSymmetricScore(t *testing.T) {
	pairs := [][2][]string{
		{{"python", "aws", "docker"}, {"python", "aws", "kubernetes"}},
		{{"go"}, {"go", "rust", "sql", "linux"}},
		{{"a1", "b2"}, {"c3"}},
	}
	for _, p := range pairs {
		ab := ScoreKeywords(p[0], p[1]).Score
		ba := ScoreKeywords(p[1], p[0]).Score
		if ab != ba {
			t.Fatalf("score not symmetric for %v: %d vs %d", p, ab, ba)
		}
		if ab < 0 || ab > 100 {
			t.Fatalf("score out of range: %d", ab)
		}
	}
}

func TestScoreTexts(t *testing.T) {
	got := ScoreTexts("Python developer skilled in Docker", "Python developer with Kubernetes")
	if got.Score <= 0 || got.Score >= 100 {
		t.Fatalf("expected partial score, got %d", got.Score)
	}
	for _, kw := range []string{"python", "developer"} {
		found := false
		for _, m := range got.MatchedKeywords {
			if m == kw {
				found = true
			}
		}
		if !found {
			t.Fatalf("matched %v missing %q", got.MatchedKeywords, kw)
		}
	}
}
