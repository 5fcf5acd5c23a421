package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(m *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(m), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"role":    GetUserRole(c),
		})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	r := newAuthTestRouter(m)

	token, err := m.GenerateAccessToken("user-1", "manager", "admin")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "admin")

	// Scheme is matched case-insensitively.
	w = get(r, "bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequiredRejections(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	r := newAuthTestRouter(m)

	for name, header := range map[string]string{
		"no header":    "",
		"no scheme":    "sometoken",
		"empty token":  "Bearer ",
		"wrong scheme": "Basic dXNlcjpwYXNz",
		"garbage":      "Bearer not.a.token",
	} {
		w := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}

	// Token signed with a different secret.
	other := NewJWTManager("other-secret", time.Hour)
	token, err := other.GenerateAccessToken("user-1", "manager", "admin")
	require.NoError(t, err)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token without a role claim.
	token, err = m.GenerateAccessToken("user-1", "manager", "")
	require.NoError(t, err)
	w = get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
