package insights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/matching"
	"resume-matcher/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the insights service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches insight routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/insights", h.getInsights)
}

func (h *Handler) getInsights(c *gin.Context) {
	out, err := h.Svc.ForResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute insights", nil)
		}
		return
	}
	respond.OK(c, out)
}
