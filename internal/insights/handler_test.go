package insights

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/matching"
)

func setupInsightsRouter(lister RecordLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	svc := &Service{Records: lister, Aggregator: NewAggregator(0, 0, nil)}
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestGetInsightsHandler(t *testing.T) {
	router := setupInsightsRouter(recordLister{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/r1/insights", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body ResumeInsights
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ResumeID != "r1" || body.TotalMatches != 0 || len(body.CareerRecommendations) != 1 {
		t.Fatalf("unexpected body %#v", body)
	}
}

func TestGetInsightsHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "invalid", err: matching.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "storage", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupInsightsRouter(recordLister{err: tt.err})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/r1/insights", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}
