package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/maintenance"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

// @Summary      Maintenance overview
// @Description  Every tracked item with remaining km, urgency tier and projected due date.
// @Tags         Maintenance
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/maintenance [get]
func ApiMaintenanceOverview(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ov, err := m.Overview(c.Request.Context(), mw.UserIDFrom(c), time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(ov))
	}
}

func ApiMaintenanceTop(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := m.Top(c.Request.Context(), mw.UserIDFrom(c), intQuery(c, "n", 3), time.Now())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

type addMaintenanceReq struct {
	Name       string  `json:"name" binding:"required"`
	IntervalKM float64 `json:"interval_km" binding:"required,gt=0"`
}

func ApiAddMaintenanceItem(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addMaintenanceReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		item, err := m.Add(c.Request.Context(), mw.UserIDFrom(c), req.Name, req.IntervalKM)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(item))
	}
}

type updateMaintenanceReq struct {
	Name     string  `json:"name" binding:"required"`
	TargetKM float64 `json:"target_km" binding:"required,gt=0"`
}

func ApiUpdateMaintenanceItem(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateMaintenanceReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		err := m.Update(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"), req.Name, req.TargetKM)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "item not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "updated"}))
	}
}

type completeMaintenanceReq struct {
	ActualKM float64 `json:"actual_km"`
	Cost     string  `json:"cost"`
	Notes    string  `json:"notes"`
}

func ApiCompleteMaintenanceItem(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req completeMaintenanceReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		record, err := m.Complete(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"),
			req.ActualKM, money.Parse(req.Cost), req.Notes, time.Now())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "item not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(record))
	}
}

func ApiDeleteMaintenanceItem(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Delete(c.Request.Context(), mw.UserIDFrom(c), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "item not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func ApiMaintenanceHistory(m *maintenance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := m.History(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(records))
	}
}

func RegisterMaintenanceRoutes(r gin.IRouter, m *maintenance.Service) {
	r.GET("/maintenance", ApiMaintenanceOverview(m))
	r.GET("/maintenance/top", ApiMaintenanceTop(m))
	r.GET("/maintenance/history", ApiMaintenanceHistory(m))
	r.POST("/maintenance", ApiAddMaintenanceItem(m))
	r.PUT("/maintenance/:id", ApiUpdateMaintenanceItem(m))
	r.POST("/maintenance/:id/complete", ApiCompleteMaintenanceItem(m))
	r.DELETE("/maintenance/:id", ApiDeleteMaintenanceItem(m))
}
