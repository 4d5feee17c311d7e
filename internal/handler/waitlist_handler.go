package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

type WaitlistHandler struct {
	waitlistService service.WaitlistService
	logger          *zap.Logger
}

func NewWaitlistHandler(waitlistService service.WaitlistService, logger *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: waitlistService, logger: logger}
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	var req service.WaitlistInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.waitlistService.Join(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": entry.ID})
}
