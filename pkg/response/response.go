package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes carried in APIResponse.ErrorCode.
const (
	CodeInvalidInput = "invalid-input"
	CodeNotFound     = "not-found"
	CodeUnavailable  = "unavailable"
	CodeFull         = "full"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal"
)

type APIResponse struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	ErrorCode string      `json:"error_code,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Code: 0, Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Code: 0, Message: "created", Data: data})
}

func Error(c *gin.Context, httpStatus int, errorCode string, message string) {
	c.JSON(httpStatus, APIResponse{Code: httpStatus, Message: message, ErrorCode: errorCode})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidInput, message)
}

func Unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Basic realm="studyhub-admin"`)
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

func Unavailable(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeUnavailable, message)
}

func Full(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeFull, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}
