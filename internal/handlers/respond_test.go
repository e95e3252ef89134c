package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"learning-service/internal/apperr"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", apperr.NotFoundf("course abc"), http.StatusNotFound},
		{"forbidden", apperr.Forbiddenf("not the owner"), http.StatusForbidden},
		{"conflict", apperr.Conflictf("already enrolled"), http.StatusConflict},
		{"unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized},
		{"validation", apperr.Validationf("bad input"), http.StatusBadRequest},
		{"wrapped not found", apperr.NotFoundf("enrollment %s", "xyz"), http.StatusNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)
			assert.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("dial tcp 10.0.0.1: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}
