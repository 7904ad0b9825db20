package server

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/documents"
	"resume-matcher/internal/insights"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/server/respond"
)

const batchRateLimitGroup = "BATCH"

// Batch requests fan out into many semantic calls, so they get their own bucket.
var batchRateLimit = middleware.RateLimitRule{Rate: 0.2, Burst: 3}

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	MatchHandler    *matching.Handler
	InsightsHandler *insights.Handler
	Health          func(ctx context.Context) map[string]any
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		payload := gin.H{"ok": true}
		if deps.Health != nil {
			for k, v := range deps.Health(c.Request.Context()) {
				payload[k] = v
			}
		}
		respond.JSON(c, http.StatusOK, payload)
	})

	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.MatchHandler != nil {
		// Work on a copy so the caller's handler is never mutated.
		mh := *deps.MatchHandler
		mh.BatchMiddleware = append(slices.Clone(mh.BatchMiddleware), middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: batchRateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				batchRateLimitGroup: batchRateLimit,
			},
		}))
		mh.RegisterRoutes(api)
	}
	if deps.InsightsHandler != nil {
		deps.InsightsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
