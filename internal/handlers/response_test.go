package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "megawarez/internal/domain"
	"megawarez/internal/dto"
)

func TestFail_MapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", fmt.Errorf("%w: name is required", dom.ErrValidation), http.StatusBadRequest, "validation error: name is required"},
		{"sort field", dom.ErrInvalidSortField, http.StatusBadRequest, dom.ErrInvalidSortField.Error()},
		{"unauthorized", dom.ErrTokenMismatch, http.StatusUnauthorized, dom.ErrTokenMismatch.Error()},
		{"not found", fmt.Errorf("category 7: %w", dom.ErrNotFound), http.StatusNotFound, "not found"},
		{"conflict", dom.ErrConflict, http.StatusBadRequest, "already registered"},
		{"referential", fmt.Errorf("insert: %w", dom.ErrReferential), http.StatusBadRequest, "referenced entity does not exist"},
		{"unknown", errors.New("db error: connection reset"), http.StatusInternalServerError, "db error: connection reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			fail(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
			if tt.status == http.StatusInternalServerError {
				assert.Len(t, c.Errors, 1)
			} else {
				assert.Empty(t, c.Errors)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, raw := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, ok := parseID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := parseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
