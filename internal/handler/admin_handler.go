package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

// AdminHandler serves study management behind the admin gate.
type AdminHandler struct {
	studyService  service.StudyService
	signupService service.SignupService
	logger        *zap.Logger
}

func NewAdminHandler(studyService service.StudyService, signupService service.SignupService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		studyService:  studyService,
		signupService: signupService,
		logger:        logger,
	}
}

// ListStudies returns all studies, drafts included.
func (h *AdminHandler) ListStudies(c *gin.Context) {
	studies, err := h.studyService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, studies)
}

func (h *AdminHandler) GetStudy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "study not found")
		return
	}

	study, err := h.studyService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, study)
}

func (h *AdminHandler) CreateStudy(c *gin.Context) {
	var req service.StudyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	study, err := h.studyService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, study)
}

func (h *AdminHandler) UpdateStudy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "study not found")
		return
	}

	var req service.StudyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	study, err := h.studyService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, study)
}

// DeleteStudy removes the study together with its signups.
func (h *AdminHandler) DeleteStudy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "study not found")
		return
	}

	if err := h.studyService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *AdminHandler) ListSignups(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "study not found")
		return
	}

	signups, err := h.studyService.ListSignups(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, signups)
}

// ExportSignups streams the study's signups as a CSV attachment.
func (h *AdminHandler) ExportSignups(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "study not found")
		return
	}

	export, err := h.studyService.ExportSignupsCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Data)
}

type UpdateSignupRequest struct {
	CalendlyScheduled *bool `json:"calendly_scheduled"`
}

func (h *AdminHandler) UpdateSignup(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.NotFound(c, "signup not found")
		return
	}

	var req UpdateSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.CalendlyScheduled == nil {
		response.BadRequest(c, "calendly_scheduled is required")
		return
	}

	signup, err := h.signupService.SetCalendlyScheduled(c.Request.Context(), id, *req.CalendlyScheduled)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, signup)
}
