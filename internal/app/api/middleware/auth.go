package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/IgorMikael1000/Motorista-Pro/internal/auth"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/logctx"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "mp_session"

const claimsKey = "authClaims"

// AuthRequired verifies the session token from the mp_session cookie or the
// Authorization header and aborts with 401 when it is missing or invalid.
func AuthRequired(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.ErrorMsg(response.APIResponseCodeUnauthorized, "missing session"))
			return
		}
		claims, err := auth.Parse(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response.ErrorMsg(response.APIResponseCodeUnauthorized, "invalid session"))
			return
		}
		c.Set(claimsKey, claims)
		if claims.UserID != "" {
			c.Set(logctx.UserIDKey, claims.UserID)
			ctx := context.WithValue(c.Request.Context(), logctx.UserIDKey, claims.UserID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// AdminRequired gates admin routes. It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil || claims.Role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				response.ErrorMsg(response.APIResponseCodeForbidden, "admin only"))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified session claims, or nil outside an
// authenticated request.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// UserIDFrom is a shortcut for the authenticated driver's id.
func UserIDFrom(c *gin.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
