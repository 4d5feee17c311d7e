package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

// StudyHandler serves the public study listing.
type StudyHandler struct {
	studyService service.StudyService
	logger       *zap.Logger
}

func NewStudyHandler(studyService service.StudyService, logger *zap.Logger) *StudyHandler {
	return &StudyHandler{studyService: studyService, logger: logger}
}

// List returns every study visible today.
func (h *StudyHandler) List(c *gin.Context) {
	studies, err := h.studyService.ListVisible(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, studies)
}

// Get returns one visible study. Drafts answer exactly like unknown ids.
func (h *StudyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "study not found")
		return
	}

	study, err := h.studyService.GetVisible(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, study)
}
