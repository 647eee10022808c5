package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

func adminGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", JwtAuth(), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func requestWithToken(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminOnly_AdminTokenPasses(t *testing.T) {
	r := adminGuardedRouter()
	token, err := utils.JwtGenerate(uuid.NewString(), "admin@example.com", string(models.UserRoleAdmin))
	require.NoError(t, err)

	w := requestWithToken(t, r, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAdminOnly_OwnerTokenForbidden(t *testing.T) {
	r := adminGuardedRouter()
	token, err := utils.JwtGenerate(uuid.NewString(), "owner@example.com", string(models.UserRoleOwner))
	require.NoError(t, err)

	w := requestWithToken(t, r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestJwtAuth_MissingToken(t *testing.T) {
	r := adminGuardedRouter()

	w := requestWithToken(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJwtAuth_GarbageToken(t *testing.T) {
	r := adminGuardedRouter()

	w := requestWithToken(t, r, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
