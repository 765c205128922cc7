package util

import (
	"errors"
	"learnpath_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of mutations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, ErrUnauthorized.Error())
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// HandleError converts a service error into the matching HTTP response.
// Anything unrecognised is logged and reported as a 500 without details.
func HandleError(c *gin.Context, err error) {
	var verr *ValidationError
	var coded StatusCoder

	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Msg)
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrInvalidTopic):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRoadmapNotFound),
		errors.Is(err, ErrModuleNotFound),
		errors.Is(err, ErrContentNotFound),
		errors.Is(err, ErrQuizNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrConcurrentUpdate):
		Error(c, http.StatusConflict, err.Error())
	case errors.As(err, &coded):
		logger.Log.Warn("Generation request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", coded.HTTPStatus()),
			zap.Error(err),
		)
		Error(c, coded.HTTPStatus(), coded.Error())
	default:
		LogInternalError(c, err)
	}
}
