package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in the envelope's errors list.
const (
	CodeBadRequest      = "ERR_BAD_REQUEST"
	CodeRateLimited     = "ERR_RATE_LIMITED"
	CodeUpstreamTimeout = "ERR_UPSTREAM_TIMEOUT"
	CodeInternal        = "ERR_INTERNAL"
)

// AppError is an error that knows its HTTP status and envelope shape.
type AppError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Status  int                    `json:"-"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(code, field, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Status: status}
}

// WithParam attaches a detail such as the list of allowed values.
func (e *AppError) WithParam(key string, value interface{}) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]interface{})
	}
	e.Params[key] = value
	return e
}

// BadRequestError creates a 400 error for one request field.
func BadRequestError(field, message string) *AppError {
	return newAppError(CodeBadRequest, field, message, http.StatusBadRequest)
}

// BadRequestErrorf creates a 400 error with formatting.
func BadRequestErrorf(field, format string, a ...interface{}) *AppError {
	return BadRequestError(field, fmt.Sprintf(format, a...))
}

// UpstreamError maps a usecase failure to an AppError. Upstream deadlines
// become 504; anything else, a cancelled request included, is a 500. The
// underlying error is kept for logging only and never rendered, since
// upstream messages may carry request URLs.
func UpstreamError(message string, err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	status, code := http.StatusInternalServerError, CodeInternal
	if errors.Is(err, context.DeadlineExceeded) {
		status, code = http.StatusGatewayTimeout, CodeUpstreamTimeout
	}
	e := newAppError(code, "", message, status)
	e.Err = err
	return e
}
