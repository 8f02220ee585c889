package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"megawarez/internal/dto"
)

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, u := newSessionStore(t)
	_, err := s.Create(context.Background(), u.ID, "t1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", RequireSession(s), func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.OK("ok", UserIDFromContext(c)))
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"unknown", "Bearer t9", http.StatusUnauthorized},
		{"bare token", "t1", http.StatusOK},
		{"bearer", "Bearer t1", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			var body dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.status != http.StatusOK, body.Error)
			if tc.status == http.StatusOK {
				assert.EqualValues(t, u.ID, body.Data)
			}
		})
	}
}
