package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/notify"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/statistics"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type ListUsersRequest struct {
	Filters  []types.CommonFilter `json:"filters"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// @Summary      List accounts (Admin)
// @Description  Pages accounts with optional column filters plus per-category counts.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ListUsersRequest true "Filters and pagination"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/users [post]
func ApiAdminListUsers(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListUsersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := acct.ListUsers(c.Request.Context(), req.Filters, req.Page, req.PageSize)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type adminRenewReq struct {
	UserID string         `json:"user_id" binding:"required"`
	Tier   types.PlanTier `json:"tier" binding:"required"`
	Days   int            `json:"days"`
}

// ApiAdminRenew extends a subscription manually, e.g. after an out-of-band
// payment.
func ApiAdminRenew(cfg *cfgpkg.Config, bill *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminRenewReq
		if err := c.ShouldBindJSON(&req); err != nil || !req.Tier.Valid() {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeBadRequest, "invalid renew request"))
			return
		}
		user, err := bill.Renew(c.Request.Context(), billing.RenewParams{
			UserID: req.UserID,
			Method: types.PaymentMethodManual,
			Amount: cfg.PlanPrice(req.Tier),
			Tier:   req.Tier,
			Days:   req.Days,
		})
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(user))
	}
}

type setCategoryReq struct {
	Category types.UserCategory `json:"category" binding:"required,oneof=trial subscriber expired"`
}

func ApiAdminSetCategory(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setCategoryReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := acct.SetCategory(c.Request.Context(), c.Param("id"), req.Category); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "updated"}))
	}
}

func ApiAdminExpire(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := acct.Expire(c.Request.Context(), c.Param("id"), time.Now()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "expired"}))
	}
}

// ApiAdminTempPassword issues a one-time password and returns the plaintext
// once; only the hash is stored.
func ApiAdminTempPassword(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		plain, err := acct.SetTempPassword(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"temp_password": plain}))
	}
}

func ApiAdminDeleteUser(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := acct.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "user not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

type adminNotifyReq struct {
	UserID  string `json:"user_id"`
	Message string `json:"message" binding:"required"`
}

// ApiAdminNotify sends a message to one account, or to everyone when
// user_id is empty.
func ApiAdminNotify(n *notify.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminNotifyReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.UserID != "" {
			if err := n.Create(c.Request.Context(), req.UserID, req.Message); err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.OKT(map[string]any{"sent": 1}))
			return
		}
		sent, err := n.Broadcast(c.Request.Context(), req.Message)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]any{"sent": sent}))
	}
}

type businessMetricsReq struct {
	Items []statistics.StatisticType `json:"items"`
}

// @Summary      Business metrics (Admin)
// @Description  Fleet totals, subscription economics, engagement, churn risk and growth series.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body businessMetricsReq false "Statistic selection; empty means all"
// @Success      200  {object}  handlers.RespBusinessMetrics
// @Router       /api/v1/admin/metrics [post]
func ApiAdminBusinessMetrics(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req businessMetricsReq
		_ = c.ShouldBindJSON(&req)
		res, err := stats.BusinessMetrics(c.Request.Context(), req.Items)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func ApiAdminDiagnostics(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := stats.Diagnostics(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func RegisterAdminRoutes(r gin.IRouter, cfg *cfgpkg.Config, acct *account.Service, bill *billing.Service, n *notify.Service, stats *statistics.Service) {
	r.POST("/users", ApiAdminListUsers(acct))
	r.POST("/users/:id/renew", ApiAdminRenew(cfg, bill))
	r.PUT("/users/:id/category", ApiAdminSetCategory(acct))
	r.POST("/users/:id/expire", ApiAdminExpire(acct))
	r.POST("/users/:id/temp-password", ApiAdminTempPassword(acct))
	r.DELETE("/users/:id", ApiAdminDeleteUser(acct))
	r.POST("/notify", ApiAdminNotify(n))
	r.POST("/metrics", ApiAdminBusinessMetrics(stats))
	r.GET("/diagnostics", ApiAdminDiagnostics(stats))
}
