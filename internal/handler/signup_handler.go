package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

type SignupHandler struct {
	signupService service.SignupService
	logger        *zap.Logger
}

func NewSignupHandler(signupService service.SignupService, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{signupService: signupService, logger: logger}
}

// Submit admits a participant. A new signup answers 201, a resubmission 200.
func (h *SignupHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Unavailable(c, "this study is not accepting signups")
		return
	}

	var req service.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.signupService.Submit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if result.Created {
		response.Created(c, result)
		return
	}
	c.JSON(http.StatusOK, response.APIResponse{Code: 0, Message: "updated", Data: result})
}
