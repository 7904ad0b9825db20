package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/metrics"
)

func TestRecoveryReturnsErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"internal_error"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
	if !strings.Contains(metrics.Render(), "http_panic_total ") {
		t.Fatalf("expected panic counter in metrics output")
	}
}
