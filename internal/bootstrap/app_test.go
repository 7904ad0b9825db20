package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/semantic"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/textproc"
)

func processedFor(text string) textproc.ProcessedDocument {
	return textproc.Process(text)
}

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:              "dev",
		ObjectStoreType:  "local",
		LocalStoreDir:    t.TempDir(),
		SemanticProvider: "none",
		SemanticTimeout:  time.Second,
		BatchMaxPairs:    5,
	}
}

func TestBuildDevUsesMemoryRepos(t *testing.T) {
	app, err := Build(context.Background(), devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if app.DB != nil || app.Redis != nil {
		t.Fatalf("expected no database or cache in dev without config")
	}
	if _, ok := app.DocumentsRepo.(*documents.MemoryRepo); !ok {
		t.Fatalf("expected memory documents repo, got %T", app.DocumentsRepo)
	}
	if _, ok := app.MatchRepo.(*matching.MemoryRepo); !ok {
		t.Fatalf("expected memory match repo, got %T", app.MatchRepo)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"semantic":"none"`) ||
		!strings.Contains(resp.Body.String(), `"database":"disabled"`) {
		t.Fatalf("unexpected health response %d %s", resp.Code, resp.Body.String())
	}
}

func TestBuildEndToEndMatch(t *testing.T) {
	app, err := Build(context.Background(), devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	repo := app.DocumentsRepo.(*documents.MemoryRepo)
	ctx := context.Background()
	if err := repo.AddJob(ctx, documents.Job{ID: "j1", Description: "Go developer with Docker"}); err != nil {
		t.Fatalf("add job: %v", err)
	}
	if err := repo.AddResume(ctx, documents.Resume{ID: "r1"}); err != nil {
		t.Fatalf("add resume: %v", err)
	}
	if err := repo.SaveResumeProcessed(ctx, "r1", processedFor("Go developer")); err != nil {
		t.Fatalf("save processed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", strings.NewReader(`{"resumeId":"r1","jobId":"j1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"semanticEnabled":false`) {
		t.Fatalf("expected lexical-only match, got %s", resp.Body.String())
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildS3RequiresBucket(t *testing.T) {
	cfg := devConfig(t)
	cfg.ObjectStoreType = "s3"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without S3_BUCKET")
	}
}

func TestBuildSemantic(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		provider    string
		openAIKey   string
		wantName    string
		wantErr     bool
		placeholder bool
	}{
		{name: "none", env: "dev", provider: "none", wantName: "none", placeholder: true},
		{name: "openai configured", env: "production", provider: "openai", openAIKey: "sk-test", wantName: "openai"},
		{name: "openai missing key in dev", env: "dev", provider: "openai", wantName: "none", placeholder: true},
		{name: "openai missing key in production", env: "production", provider: "openai", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{Env: tt.env, SemanticProvider: tt.provider, OpenAIAPIKey: tt.openAIKey}
			p, name, err := BuildSemantic(context.Background(), cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildSemantic: %v", err)
			}
			if name != tt.wantName {
				t.Fatalf("name = %q, want %q", name, tt.wantName)
			}
			if _, ok := p.(semantic.Placeholder); ok != tt.placeholder {
				t.Fatalf("placeholder = %v, want %v (%T)", ok, tt.placeholder, p)
			}
		})
	}
}
