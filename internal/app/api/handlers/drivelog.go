package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/drivelog"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/gamification"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

// driveLogReq carries money fields as display strings so localized input
// like "R$ 1.200,50" parses server-side; malformed values become zero.
type driveLogReq struct {
	LogDate         string  `json:"log_date"`
	GrossEarnings   string  `json:"gross_earnings"`
	EarningsUber    string  `json:"earnings_uber"`
	EarningsPop99   string  `json:"earnings_pop99"`
	EarningsPrivate string  `json:"earnings_private"`
	EarningsOther   string  `json:"earnings_other"`
	ExpenseFuel     string  `json:"expense_fuel"`
	ExpenseFood     string  `json:"expense_food"`
	ExpenseMaint    string  `json:"expense_maintenance"`
	RidesUber       int     `json:"rides_uber"`
	RidesPop99      int     `json:"rides_pop99"`
	RidesPrivate    int     `json:"rides_private"`
	RidesOther      int     `json:"rides_other"`
	DistanceKM      float64 `json:"distance_km"`
	HoursWorked     float64 `json:"hours_worked"`
}

func (r *driveLogReq) toModel(userID string) *models.DriveLog {
	logDate, err := time.ParseInLocation("2006-01-02", r.LogDate, time.Local)
	if err != nil {
		now := time.Now()
		logDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return &models.DriveLog{
		UserID:             userID,
		LogDate:            logDate,
		GrossEarnings:      money.Parse(r.GrossEarnings),
		EarningsUber:       money.Parse(r.EarningsUber),
		EarningsPop99:      money.Parse(r.EarningsPop99),
		EarningsPrivate:    money.Parse(r.EarningsPrivate),
		EarningsOther:      money.Parse(r.EarningsOther),
		ExpenseFuel:        money.Parse(r.ExpenseFuel),
		ExpenseFood:        money.Parse(r.ExpenseFood),
		ExpenseMaintenance: money.Parse(r.ExpenseMaint),
		RidesUber:          r.RidesUber,
		RidesPop99:         r.RidesPop99,
		RidesPrivate:       r.RidesPrivate,
		RidesOther:         r.RidesOther,
		DistanceKM:         r.DistanceKM,
		HoursWorked:        r.HoursWorked,
	}
}

// @Summary      List drive logs
// @Description  Pages the drive logs of a period. Basic-tier accounts are clamped to the trailing 30 days.
// @Tags         DriveLogs
// @Produce      json
// @Param        period  query  string  false  "day|week|month|year"
// @Param        anchor  query  string  false  "period anchor, e.g. 2026-08-23"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/logs [get]
func ApiListDriveLogs(acct *account.Service, logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		res, err := logs.List(c.Request.Context(), user, rangeFromQuery(c),
			intQuery(c, "page", 1), intQuery(c, "page_size", 20), time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func ApiGetDriveLog(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := logs.Get(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "log not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(l))
	}
}

func ApiCreateDriveLog(logs *drivelog.Service, badges *gamification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req driveLogReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		l := req.toModel(mw.UserIDFrom(c))
		if err := logs.Create(c.Request.Context(), l); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		unlocked, _ := badges.Evaluate(c.Request.Context(), l.UserID)
		c.JSON(http.StatusOK, response.OKT(map[string]any{"log": l, "unlocked": unlocked}))
	}
}

func ApiUpdateDriveLog(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req driveLogReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		userID := mw.UserIDFrom(c)
		l := req.toModel(userID)
		l.ID = c.Param("id")
		if err := logs.Update(c.Request.Context(), userID, l); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "log not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(l))
	}
}

func ApiDeleteDriveLog(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := logs.Delete(c.Request.Context(), mw.UserIDFrom(c), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "log not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func RegisterDriveLogRoutes(r gin.IRouter, acct *account.Service, logs *drivelog.Service, badges *gamification.Service) {
	r.GET("/logs", ApiListDriveLogs(acct, logs))
	r.GET("/logs/:id", ApiGetDriveLog(logs))
	r.POST("/logs", ApiCreateDriveLog(logs, badges))
	r.PUT("/logs/:id", ApiUpdateDriveLog(logs))
	r.DELETE("/logs/:id", ApiDeleteDriveLog(logs))
}
