package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"productlab/studyhub/internal/handler/middleware"
	"productlab/studyhub/internal/service"
	"productlab/studyhub/pkg/response"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto the response envelope. Unclassified
// errors are logged and reported with a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrStudyNotFound):
		response.NotFound(c, "study not found")
	case errors.Is(err, service.ErrSignupNotFound):
		response.NotFound(c, "signup not found")
	case errors.Is(err, service.ErrStudyUnavailable):
		response.Unavailable(c, "this study is not accepting signups")
	case errors.Is(err, service.ErrStudyFull):
		response.Full(c, "this study is full")
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, "invalid admin credentials")
	default:
		logger.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err),
		)
		response.InternalError(c, "internal server error")
	}
}
