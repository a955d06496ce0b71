package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error     string           `json:"error"`
	Code      domain.ErrorKind `json:"code"`
	Retryable bool             `json:"retryable"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindUnauthenticated:     http.StatusUnauthorized,
	domain.KindNotFound:            http.StatusNotFound,
	domain.KindValidation:          http.StatusBadRequest,
	domain.KindCapacityExceeded:    http.StatusForbidden,
	domain.KindRateLimited:         http.StatusTooManyRequests,
	domain.KindLocationUnavailable: http.StatusUnprocessableEntity,
	domain.KindConflict:            http.StatusConflict,
	domain.KindDependency:          http.StatusServiceUnavailable,
}

// respondError writes err with the status of its kind. Dependency failures
// are logged and their cause is not exposed.
func respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	var de *domain.Error
	if kind == domain.KindDependency {
		_ = c.Error(err)
		message = "something went wrong, please try again"
		if errors.As(err, &de) {
			message = de.Message
		}
	}

	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      kind,
		Retryable: domain.Retryable(err),
	})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, domain.Validation(message))
}

// idParam reads a uuid path parameter.
func idParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		badRequest(c, "invalid "+name)
		return "", false
	}
	return id, true
}

// location reads the viewer's time zone from X-Timezone. Nil means the
// configured default.
func location(c *gin.Context) (*time.Location, bool) {
	name := c.GetHeader("X-Timezone")
	if name == "" {
		return nil, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		badRequest(c, "invalid X-Timezone header")
		return nil, false
	}
	return loc, true
}
