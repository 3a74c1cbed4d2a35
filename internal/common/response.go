package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse standard API response structure
type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Meta  *Meta       `json:"meta,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// Meta pagination metadata
type Meta struct {
	Page      int     `json:"page,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	Total     int64   `json:"total,omitempty"`
	PageCount int     `json:"page_count,omitempty"`
	PageRange []int   `json:"page_range,omitempty"`
}

// ErrorInfo error details
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// SuccessResponse returns a successful JSON response
func SuccessResponse(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{Data: data, Meta: meta})
}

// CreatedResponse returns a 201 Created response
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Data: data})
}

// ErrorResponse returns an error JSON response
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	errInfo := &ErrorInfo{
		Code:    getErrorCode(status),
		Message: message,
	}
	if ve, ok := AsValidationError(err); ok {
		errInfo.Fields = ve.Fields
	}
	c.JSON(status, APIResponse{Error: errInfo})
}

// FailResponse maps a core error to its HTTP equivalent: ValidationError
// to 400 with the field map, NotFound family to 404, Forbidden to 403,
// duplicate board name to 409, anything else to 500.
func FailResponse(c *gin.Context, err error) {
	if _, ok := AsValidationError(err); ok {
		ErrorResponse(c, http.StatusBadRequest, "validation failed", err)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrBoardNotFound),
		errors.Is(err, ErrTopicNotFound),
		errors.Is(err, ErrPostNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, ErrDuplicateBoardName):
		ErrorResponse(c, http.StatusConflict, err.Error(), err)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "internal error", err)
	}
}

// getErrorCode generates error code from HTTP status
func getErrorCode(status int) string {
	switch status {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 500:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "ERROR"
	}
}
