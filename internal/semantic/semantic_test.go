package semantic

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Analysis
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"matchScore": 82, "strengths": ["Go", "AWS"], "gaps": ["Kubernetes"], "assessment": "Strong backend fit."}`,
			want: Analysis{MatchScore: 82, Strengths: []string{"Go", "AWS"}, Gaps: []string{"Kubernetes"}, Assessment: "Strong backend fit."},
		},
		{
			name: "fenced with string score",
			raw:  "```json\n{\"match_score\": \"67.6\", \"strengths\": \"Python\", \"assessment\": \" ok \"}\n```",
			want: Analysis{MatchScore: 68, Strengths: []string{"Python"}, Gaps: []string{}, Assessment: "ok"},
		},
		{
			name: "score clamped",
			raw:  `{"score": 140, "strengths": [], "gaps": ["", "SQL"]}`,
			want: Analysis{MatchScore: 100, Strengths: []string{}, Gaps: []string{"SQL"}},
		},
		{
			name: "negative score clamped",
			raw:  `{"matchScore": -5}`,
			want: Analysis{MatchScore: 0, Strengths: []string{}, Gaps: []string{}},
		},
		{name: "missing score", raw: `{"strengths": ["Go"]}`, wantErr: true},
		{name: "not json", raw: "I think the candidate is great", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResponse) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("  Go engineer  ", "Backend role")
	if !strings.Contains(prompt, "Resume:\nGo engineer\n") || !strings.Contains(prompt, "Job description:\nBackend role") {
		t.Fatalf("unexpected prompt:\n%s", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", prompt)
	}

	long := BuildPrompt(strings.Repeat("é", maxPromptTextRunes+10), "job")
	if strings.Count(long, "é") != maxPromptTextRunes {
		t.Fatalf("resume not truncated to %d runes", maxPromptTextRunes)
	}
}

func TestPlaceholder(t *testing.T) {
	if _, err := (Placeholder{}).Analyze(context.Background(), "a", "b"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestWithRetry(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{name: "success", errs: []error{nil}, wantCalls: 1},
		{name: "transient then success", errs: []error{fmt.Errorf("openai http status 503"), nil}, wantCalls: 2},
		{name: "transient twice", errs: []error{errors.New("connection reset by peer"), errors.New("connection reset by peer")}, wantCalls: 2, wantErr: true},
		{name: "permanent", errs: []error{fmt.Errorf("openai http status 401")}, wantCalls: 1, wantErr: true},
		{name: "invalid response", errs: []error{fmt.Errorf("%w: bad", ErrInvalidResponse)}, wantCalls: 1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			base := ProviderFunc(func(ctx context.Context, resumeText, jobText string) (Analysis, error) {
				err := tt.errs[calls]
				calls++
				if err != nil {
					return Analysis{}, err
				}
				return Analysis{MatchScore: 70}, nil
			})
			p := retrying{base: base, delay: time.Millisecond}

			got, err := p.Analyze(context.Background(), "r", "j")
			if calls != tt.wantCalls {
				t.Fatalf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil || got.MatchScore != 70 {
				t.Fatalf("got %#v, %v", got, err)
			}
		})
	}
}

func TestWithRetryHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	base := ProviderFunc(func(ctx context.Context, resumeText, jobText string) (Analysis, error) {
		calls++
		cancel()
		return Analysis{}, errors.New("unexpected EOF")
	})
	p := retrying{base: base, delay: time.Hour}

	if _, err := p.Analyze(ctx, "r", "j"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestWithRetryNil(t *testing.T) {
	if WithRetry(nil) != nil {
		t.Fatal("expected nil provider")
	}
}

func TestBase(t *testing.T) {
	base := ProviderFunc(func(ctx context.Context, resumeText, jobText string) (Analysis, error) {
		return Analysis{MatchScore: 1}, nil
	})
	wrapped := WithRetry(WithRetry(base))

	got := Base(wrapped)
	if _, ok := got.(ProviderFunc); !ok {
		t.Fatalf("expected innermost provider, got %T", got)
	}
	if _, ok := Base(Placeholder{}).(Placeholder); !ok {
		t.Fatalf("expected undecorated provider to be returned as is")
	}
}
