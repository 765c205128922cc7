package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailRegistered    = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUnauthorized       = errors.New("request is not authorized")
	ErrRoadmapNotFound    = errors.New("roadmap not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrInvalidTopic       = errors.New("topic not found in module")
	ErrContentNotFound    = errors.New("content not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrConcurrentUpdate   = errors.New("module was updated concurrently, please retry")
)

// ValidationError is a problem with caller input. Its message is safe to
// return to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Invalidf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StatusCoder is implemented by errors that carry their own HTTP status, such
// as failures reported by the generation service.
type StatusCoder interface {
	error
	HTTPStatus() int
}
