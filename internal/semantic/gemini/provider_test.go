package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-matcher/internal/semantic"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestAnalyze(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"matchScore\": 55, \"strengths\": [\"SQL\"], \"gaps\": [\"Go\", \"gRPC\"], \"assessment\": \"Partial fit\"}\n```"}
	p := &Provider{generator: gen}

	analysis, err := p.Analyze(context.Background(), "SQL analyst", "Go gRPC engineer")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.MatchScore != 55 || len(analysis.Gaps) != 2 || analysis.Assessment != "Partial fit" {
		t.Fatalf("unexpected analysis %#v", analysis)
	}
	if !strings.Contains(gen.prompt, "SQL analyst") || !strings.Contains(gen.prompt, "Go gRPC engineer") {
		t.Fatalf("prompt missing inputs:\n%s", gen.prompt)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	p := &Provider{generator: &stubGenerator{err: boom}}
	if _, err := p.Analyze(context.Background(), "r", "j"); !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}

	p = &Provider{generator: &stubGenerator{response: "no json here"}}
	if _, err := p.Analyze(context.Background(), "r", "j"); !errors.Is(err, semantic.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), "  ", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
