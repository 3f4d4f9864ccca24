package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotedeck/quotedeck/internal/domain"
)

// ContextKeyTraceID is the gin context key holding the request trace ID.
const ContextKeyTraceID = "trace_id"

// GetTraceID extracts the trace ID for the current request.
// Context takes precedence over the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if value, exists := c.Get(ContextKeyTraceID); exists {
		if traceID, ok := value.(string); ok {
			return traceID
		}
	}

	return c.Request.Header.Get("X-Request-ID")
}

// HandleError writes a domain error as a JSON error envelope.
// Unavailable and unknown errors get generic messages so downstream
// failure details never reach clients.
func HandleError(c *gin.Context, err error) {
	status, errResp := errorResponseFor(err)
	errResp.TraceID = GetTraceID(c)

	c.JSON(status, errResp)
}

func errorResponseFor(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"service temporarily unavailable",
		)

	default:
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}
