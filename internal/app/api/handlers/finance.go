package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/finance"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/period"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

// @Summary      Dashboard
// @Description  Aggregated earnings, expenses, derived metrics and the smart weekly goal for the requested period.
// @Tags         Finance
// @Produce      json
// @Param        period  query  string  false  "day|week|month|year"
// @Param        anchor  query  string  false  "period anchor"
// @Success      200  {object}  handlers.RespDashboard
// @Router       /api/v1/dashboard [get]
func ApiDashboard(acct *account.Service, fin *finance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		d, err := fin.Dashboard(c.Request.Context(), user, rangeFromQuery(c), time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(d))
	}
}

func ApiReports(acct *account.Service, fin *finance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		rep, err := fin.Reports(c.Request.Context(), user, rangeFromQuery(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rep))
	}
}

func ApiRealProfit(acct *account.Service, fin *finance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		rp, err := fin.RealProfit(c.Request.Context(), user, rangeFromQuery(c), time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rp))
	}
}

// ApiWeekOptions lists the selectable report weeks of a year.
func ApiWeekOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		year := intQuery(c, "year", now.Year())
		c.JSON(http.StatusOK, response.OKT(period.WeekOptions(year, now)))
	}
}

// ApiDismissGoal hides the goal card until next week.
func ApiDismissGoal(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		week := period.WeekStart(time.Now()).Format("2006-01-02")
		if err := set.Set(c.Request.Context(), mw.UserIDFrom(c), settings.KeyGoalDismissedWeek, week); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"dismissed_week": week}))
	}
}

func RegisterFinanceRoutes(r gin.IRouter, acct *account.Service, fin *finance.Service, set *settings.Service) {
	r.GET("/dashboard", ApiDashboard(acct, fin))
	r.GET("/reports", ApiReports(acct, fin))
	r.GET("/reports/weeks", ApiWeekOptions())
	r.GET("/real-profit", ApiRealProfit(acct, fin))
	r.POST("/goal/dismiss", ApiDismissGoal(set))
}
