package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/server/respond"
	"resume-matcher/internal/shared/storage/object"
	"resume-matcher/internal/textproc"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/:id/process", h.processResume)
	rg.POST("/jobs/:id/process", h.processJob)
}

// ProcessedResponse is the outward-facing summary of a processed document.
type ProcessedResponse struct {
	ID        string             `json:"id"`
	WordCount int                `json:"wordCount"`
	Sections  []textproc.Section `json:"sections"`
	Keywords  []string           `json:"keywords"`
}

func toProcessedResponse(id string, doc *textproc.ProcessedDocument) ProcessedResponse {
	resp := ProcessedResponse{ID: id, Sections: []textproc.Section{}, Keywords: []string{}}
	if doc == nil {
		return resp
	}
	resp.WordCount = doc.WordCount
	for _, section := range textproc.Sections {
		if _, ok := doc.Sections[section]; ok {
			resp.Sections = append(resp.Sections, section)
		}
	}
	if doc.Keywords != nil {
		resp.Keywords = doc.Keywords
	}
	return resp
}

func (h *Handler) processResume(c *gin.Context) {
	resume, err := h.Svc.ProcessResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeProcessError(c, err, "resume")
		return
	}
	respond.OK(c, toProcessedResponse(resume.ID, resume.Processed))
}

func (h *Handler) processJob(c *gin.Context) {
	job, err := h.Svc.ProcessJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeProcessError(c, err, "job")
		return
	}
	respond.OK(c, toProcessedResponse(job.ID, job.Processed))
}

func writeProcessError(c *gin.Context, err error, kind string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", kind+" not found", nil)
	case errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", kind+" file not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedMediaType):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error(), nil)
	case errors.Is(err, extract.ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from "+kind, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process "+kind, nil)
	}
}
