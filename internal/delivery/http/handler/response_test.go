package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		err       error
		status    int
		retryable bool
		message   string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, false, "not authenticated"},
		{"not found", domain.ErrMatchNotFound, http.StatusNotFound, false, "match not found"},
		{"validation", domain.ErrEmptyContent, http.StatusBadRequest, false, "message cannot be empty"},
		{"capacity", domain.ErrMatchLimitReached, http.StatusForbidden, false, domain.ErrMatchLimitReached.Error()},
		{"rate limited", domain.ErrMessageLimitReached, http.StatusTooManyRequests, false, domain.ErrMessageLimitReached.Error()},
		{"location", domain.ErrLocationUnavailable, http.StatusUnprocessableEntity, false, domain.ErrLocationUnavailable.Error()},
		{"conflict", domain.ErrSwipeAlreadyExists, http.StatusConflict, false, "already swiped on this profile"},
		{"dependency hides cause", domain.Dependency("failed to send message", errors.New("pq: connection refused")), http.StatusServiceUnavailable, true, "failed to send message"},
		{"untyped error", errors.New("boom"), http.StatusServiceUnavailable, true, "something went wrong, please try again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.retryable, resp.Retryable)
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, domain.KindOf(tt.err), resp.Code)
		})
	}
}

func TestLocation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	loc, ok := location(c)
	assert.True(t, ok)
	assert.Nil(t, loc)

	c.Request.Header.Set("X-Timezone", "Europe/Berlin")
	loc, ok = location(c)
	require.True(t, ok)
	assert.Equal(t, "Europe/Berlin", loc.String())
}
