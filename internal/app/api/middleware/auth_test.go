package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorMikael1000/Motorista-Pro/internal/auth"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
)

func testConfig() *cfgpkg.Config {
	return &cfgpkg.Config{
		Auth: cfgpkg.AuthConfig{
			JWTSecret:       "test-secret",
			SessionTTLHours: 1,
			AdminTTLHours:   1,
		},
	}
}

func testRouter(cfg *cfgpkg.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", AuthRequired(cfg))
	authed.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFrom(c))
	})
	admin := r.Group("/admin", AuthRequired(cfg), AdminRequired())
	admin.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestAuthRequiredRejectsMissingSession(t *testing.T) {
	r := testRouter(testConfig())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsCookieAndBearer(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)
	token, err := auth.IssueSession(cfg, "user-123", "driver@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-123", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-123", w.Body.String())
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	r := testRouter(testConfig())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-jwt"})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequiredGatesUserSessions(t *testing.T) {
	cfg := testConfig()
	r := testRouter(cfg)

	userToken, err := auth.IssueSession(cfg, "user-123", "driver@example.com")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: userToken})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := auth.IssueAdmin(cfg)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: adminToken})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
