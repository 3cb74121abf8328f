package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/auth"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/googleauth"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

type googleSignInReq struct {
	IDToken      string `json:"id_token" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

type signInResp struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

func setSessionCookie(c *gin.Context, cfg *cfgpkg.Config, token string) {
	maxAge := cfg.Auth.SessionTTLHours * 3600
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mw.SessionCookie, token, maxAge, "/", "", false, true)
}

// @Summary      Google sign-in
// @Description  Verifies a Google ID token, creating a trial account on first sign-in, and sets the session cookie.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handlers.googleSignInReq true "Google ID token"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/auth/google [post]
func ApiGoogleSignIn(cfg *cfgpkg.Config, verifier *googleauth.Verifier, acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req googleSignInReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		info, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeUnauthorized, "invalid identity token"))
			return
		}
		user, created, err := acct.FederatedSignIn(c.Request.Context(), info, req.ReferralCode)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		token, err := auth.IssueSession(cfg, user.ID, user.Email)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		setSessionCookie(c, cfg, token)
		c.JSON(http.StatusOK, response.OKT(signInResp{
			UserID: user.ID, Email: user.Email, Name: user.Name, Created: created,
		}))
	}
}

type passwordSignInReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func ApiPasswordSignIn(cfg *cfgpkg.Config, acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordSignInReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		user, err := acct.PasswordSignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeUnauthorized, "invalid credentials"))
			return
		}
		token, err := auth.IssueSession(cfg, user.ID, user.Email)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		setSessionCookie(c, cfg, token)
		c.JSON(http.StatusOK, response.OKT(signInResp{UserID: user.ID, Email: user.Email, Name: user.Name}))
	}
}

type adminSignInReq struct {
	Password string `json:"password" binding:"required"`
}

// ApiAdminSignIn exchanges the shared admin password for a short-lived admin
// session.
func ApiAdminSignIn(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminSignInReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if cfg.Auth.AdminPassword == "" || req.Password != cfg.Auth.AdminPassword {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeUnauthorized, "wrong password"))
			return
		}
		token, err := auth.IssueAdmin(cfg)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		setSessionCookie(c, cfg, token)
		c.JSON(http.StatusOK, response.OKT(map[string]string{"role": auth.RoleAdmin}))
	}
}

func ApiSignOut() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(mw.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "signed out"}))
	}
}

func ApiMe(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := acct.Get(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "account not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

func ApiUpdateProfile(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields map[string]any
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := acct.UpdateProfile(c.Request.Context(), mw.UserIDFrom(c), fields); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "updated"}))
	}
}

type changePasswordReq struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func ApiChangePassword(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := acct.ChangePassword(c.Request.Context(), mw.UserIDFrom(c), req.NewPassword); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "changed"}))
	}
}

func RegisterAuthRoutes(r gin.IRouter, cfg *cfgpkg.Config, verifier *googleauth.Verifier, acct *account.Service) {
	r.POST("/auth/google", ApiGoogleSignIn(cfg, verifier, acct))
	r.POST("/auth/login", ApiPasswordSignIn(cfg, acct))
	r.POST("/auth/admin", ApiAdminSignIn(cfg))
	r.POST("/auth/logout", ApiSignOut())
}

func RegisterProfileRoutes(r gin.IRouter, acct *account.Service) {
	r.GET("/me", ApiMe(acct))
	r.PUT("/me", ApiUpdateProfile(acct))
	r.PUT("/me/password", ApiChangePassword(acct))
}
