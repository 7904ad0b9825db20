package matching

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/storage/object"
)

const defaultMaxBatchPairs = 50

// Handler wires HTTP handlers to the matching service.
type Handler struct {
	Svc           *Service
	MaxBatchPairs int

	// BatchMiddleware runs in front of the batch route only.
	BatchMiddleware []gin.HandlerFunc
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxBatchPairs int) *Handler {
	if maxBatchPairs <= 0 {
		maxBatchPairs = defaultMaxBatchPairs
	}
	return &Handler{Svc: svc, MaxBatchPairs: maxBatchPairs}
}

// RegisterRoutes attaches match routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/matches", h.createMatch)
	batch := append(append([]gin.HandlerFunc{}, h.BatchMiddleware...), h.createBatch)
	rg.POST("/matches/batch", batch...)
	rg.DELETE("/matches/:id", h.deleteMatch)
	rg.GET("/resumes/:id/matches", h.listByResume)
	rg.GET("/jobs/:id/matches", h.listByJob)
	rg.POST("/semantic/test", h.testSemantic)
}

type matchRequest struct {
	ResumeID string `json:"resumeId"`
	JobID    string `json:"jobId"`
}

type batchRequest struct {
	Pairs []Pair `json:"pairs"`
}

func (h *Handler) createMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.ResumeID) == "" || strings.TrimSpace(req.JobID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId and jobId are required", []map[string]string{
			{"field": "resumeId", "issue": "required"},
			{"field": "jobId", "issue": "required"},
		})
		return
	}

	record, err := h.Svc.Match(c.Request.Context(), req.ResumeID, req.JobID)
	if err != nil {
		writeMatchError(c, err)
		return
	}
	respond.Created(c, record)
}

func (h *Handler) createBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.Pairs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "pairs must not be empty", nil)
		return
	}
	if len(req.Pairs) > h.MaxBatchPairs {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("at most %d pairs per batch", h.MaxBatchPairs), nil)
		return
	}

	respond.OK(c, h.Svc.MatchBatch(c.Request.Context(), req.Pairs))
}

func (h *Handler) deleteMatch(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeMatchError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listByResume(c *gin.Context) {
	records, err := h.Svc.ListByResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeMatchError(c, err)
		return
	}
	respond.Items(c, records)
}

func (h *Handler) listByJob(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a number", nil)
			return
		}
		limit = parsed
	}

	records, err := h.Svc.ListByJob(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeMatchError(c, err)
		return
	}
	respond.Items(c, records)
}

func (h *Handler) testSemantic(c *gin.Context) {
	analysis, err := h.Svc.TestSemantic(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "semantic_unavailable", err.Error(), nil)
		return
	}
	respond.OK(c, analysis)
}

func writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume file not found", nil)
	case errors.Is(err, ErrMissingPrerequisite):
		respond.Error(c, http.StatusConflict, "missing_prerequisite", err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedMediaType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), nil)
	case errors.Is(err, extract.ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from resume", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process match", nil)
	}
}
