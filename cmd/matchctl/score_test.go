package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-matcher/internal/matching"
	"resume-matcher/internal/semantic"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunScoreLexicalOnly(t *testing.T) {
	dir := t.TempDir()
	opts := scoreOptions{
		ResumePath: writeFile(t, dir, "resume.txt", "Python developer with AWS and Docker"),
		JobPath:    writeFile(t, dir, "job.txt", "Python developer with AWS and Kubernetes"),
	}

	var out bytes.Buffer
	if err := runScore(context.Background(), &out, &matching.Service{}, opts); err != nil {
		t.Fatalf("runScore: %v", err)
	}

	var got matching.MatchAnalysis
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if got.CombinedScore != 60 || got.Metadata.SemanticEnabled {
		t.Fatalf("combined=%d semantic=%v, want 60 and false", got.CombinedScore, got.Metadata.SemanticEnabled)
	}
}

func TestRunScoreWithSemantic(t *testing.T) {
	dir := t.TempDir()
	opts := scoreOptions{
		ResumePath: writeFile(t, dir, "resume.pdf", "Python developer with AWS and Docker"),
		JobPath:    writeFile(t, dir, "job.txt", "Python developer with AWS and Kubernetes"),
	}
	provider := semantic.ProviderFunc(func(ctx context.Context, resumeText, jobText string) (semantic.Analysis, error) {
		return semantic.Analysis{MatchScore: 80, Assessment: "Good fit."}, nil
	})

	var out bytes.Buffer
	if err := runScore(context.Background(), &out, &matching.Service{Semantic: provider}, opts); err != nil {
		t.Fatalf("runScore: %v", err)
	}
	if !strings.Contains(out.String(), `"combinedScore": 72`) {
		t.Fatalf("expected combined score 72, got %s", out.String())
	}
}

func TestRunScoreErrors(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.txt", "Go engineer")
	empty := writeFile(t, dir, "empty.txt", "   ")

	cases := []struct {
		name string
		opts scoreOptions
	}{
		{"missing resume", scoreOptions{ResumePath: filepath.Join(dir, "nope.txt"), JobPath: job}},
		{"missing job", scoreOptions{ResumePath: job, JobPath: filepath.Join(dir, "nope.txt")}},
		{"empty resume", scoreOptions{ResumePath: empty, JobPath: job}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := runScore(context.Background(), &bytes.Buffer{}, &matching.Service{}, tc.opts); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	if err := Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "matchctl version: ") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
