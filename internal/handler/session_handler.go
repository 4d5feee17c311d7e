package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/handler/middleware"
	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

// SessionHandler issues and revokes admin session tokens.
type SessionHandler struct {
	authService service.AdminAuthService
	logger      *zap.Logger
}

func NewSessionHandler(authService service.AdminAuthService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{authService: authService, logger: logger}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, session)
}

// Logout revokes the bearer token used for this request.
func (h *SessionHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		response.BadRequest(c, "logout requires a bearer session token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, nil)
}
