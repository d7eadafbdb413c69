package http

import (
	"errors"
	"net/http"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/observability"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

const (
	codeValidation        = "validation_error"
	codeNotFound          = "not_found"
	codeForbidden         = "forbidden"
	codeUnauthorized      = "unauthorized"
	codeIllegalTransition = "illegal_transition"
	codeConflict          = "conflict"
	codePersistence       = "persistence_failure"
	codeInternal          = "internal_error"
)

// classify maps the error taxonomy onto a status code and an error code.
func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpCode(httpErr.Code)
	case errs.IsValidation(err):
		return http.StatusBadRequest, codeValidation
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, codeUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, codeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, errs.ErrIllegalTransition):
		return http.StatusConflict, codeIllegalTransition
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, codeConflict
	case errors.Is(err, errs.ErrPersistenceFailure):
		return http.StatusInternalServerError, codePersistence
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func httpCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeValidation
	case http.StatusUnauthorized:
		return codeUnauthorized
	case http.StatusForbidden:
		return codeForbidden
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusConflict:
		return codeConflict
	default:
		if status >= http.StatusInternalServerError {
			return codeInternal
		}
		return http.StatusText(status)
	}
}

// errorHandler renders every error as an ErrorResponse. Server errors are
// logged with their cause; the client only sees a generic message for them.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code := classify(err)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		observability.FromContext(c.Request().Context()).Error("Request failed", zap.Error(err))
		message = "internal server error"
	}

	body := ErrorResponse{
		Error:     code,
		Message:   message,
		Status:    status,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		observability.FromContext(c.Request().Context()).Warn("Writing error response failed", zap.Error(writeErr))
	}
}
