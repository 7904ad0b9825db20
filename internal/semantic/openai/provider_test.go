package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-matcher/internal/semantic"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New("test-key", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.baseURL = srv.URL
	return p
}

func TestAnalyze(t *testing.T) {
	var got chatRequest
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "{\"matchScore\": 80, \"strengths\": [\"Go\"], \"gaps\": [\"Kafka\"], \"assessment\": \"Good fit\"}"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	})

	analysis, err := p.Analyze(context.Background(), "Go developer", "Go and Kafka engineer")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.MatchScore != 80 || analysis.Assessment != "Good fit" || len(analysis.Gaps) != 1 {
		t.Fatalf("unexpected analysis %#v", analysis)
	}
	if got.Model != defaultModel || got.ResponseFormat.Type != "json_object" {
		t.Fatalf("unexpected request %#v", got)
	}
	if len(got.Messages) != 2 || !strings.Contains(got.Messages[1].Content, "Go and Kafka engineer") {
		t.Fatalf("prompt missing job text: %#v", got.Messages)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "api error", status: http.StatusTooManyRequests, body: `{"error": {"message": "quota", "type": "insufficient_quota"}}`, wantMsg: "http status 429"},
		{name: "server error without body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantMsg: "http status 502"},
		{name: "no choices", status: http.StatusOK, body: `{"choices": []}`, wantMsg: "missing choices"},
		{name: "empty content", status: http.StatusOK, body: `{"choices": [{"message": {"content": "  "}}]}`, wantMsg: "empty content"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.Analyze(context.Background(), "r", "j")
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestAnalyzeInvalidContent(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "not json"}}]}`))
	})
	if _, err := p.Analyze(context.Background(), "r", "j"); !errors.Is(err, semantic.ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(" ", "gpt-4o"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
