package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDashlessUUID(t *testing.T) {
	id := GenerateDashlessUUID()

	assert.Len(t, id, 32, "dashless UUID should be 32 hex characters")
	assert.False(t, strings.Contains(id, "-"), "dashless UUID should contain no dashes")

	id2 := GenerateDashlessUUID()
	assert.NotEqual(t, id, id2, "two generated UUIDs should differ")
}

func TestGinErrorHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		fn         func(c *gin.Context, message string)
		wantStatus int
	}{
		{"BadRequest", GinBadRequest, http.StatusBadRequest},
		{"Unauthorized", GinUnauthorized, http.StatusUnauthorized},
		{"Forbidden", GinForbidden, http.StatusForbidden},
		{"NotFound", GinNotFound, http.StatusNotFound},
		{"Conflict", GinConflict, http.StatusConflict},
		{"InternalServerError", GinInternalServerError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			tc.fn(c, "something went wrong")

			assert.Equal(t, tc.wantStatus, w.Code)
			var resp APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "something went wrong", resp.Error)
			assert.True(t, c.IsAborted(), "error helpers must abort the request")
		})
	}
}

func TestGinErrorWithCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	GinErrorWithCode(c, http.StatusConflict, "ALREADY_PAUSED", "dossier is already paused")

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ALREADY_PAUSED", resp.Code)
	assert.Equal(t, "dossier is already paused", resp.Error)
}
