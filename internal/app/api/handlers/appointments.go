package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/drivelog"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/gamification"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

type appointmentReq struct {
	Client      string `json:"client" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	Origin      string `json:"origin"`
	Stop        string `json:"stop"`
	Destination string `json:"destination"`
	Value       string `json:"value"`
	Notes       string `json:"notes"`
}

func (r *appointmentReq) toModel(userID string) (*models.Appointment, error) {
	when, err := time.ParseInLocation("2006-01-02T15:04", r.ScheduledAt, time.Local)
	if err != nil {
		when, err = time.ParseInLocation(time.RFC3339, r.ScheduledAt, time.Local)
		if err != nil {
			return nil, errors.New("invalid scheduled_at")
		}
	}
	return &models.Appointment{
		UserID:      userID,
		Client:      r.Client,
		ScheduledAt: when,
		Origin:      r.Origin,
		Stop:        r.Stop,
		Destination: r.Destination,
		Value:       money.Parse(r.Value),
		Notes:       r.Notes,
	}, nil
}

func ApiListAppointments(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := logs.PendingAppointments(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiCreateAppointment(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appointmentReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		a, err := req.toModel(mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := logs.CreateAppointment(c.Request.Context(), a); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(a))
	}
}

func ApiUpdateAppointment(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appointmentReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		userID := mw.UserIDFrom(c)
		a, err := req.toModel(userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		a.ID = c.Param("id")
		if err := logs.UpdateAppointment(c.Request.Context(), userID, a); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "appointment not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(a))
	}
}

// @Summary      Complete appointment
// @Description  Marks a trip done and books its value as a private ride on today's drive log.
// @Tags         Appointments
// @Produce      json
// @Param        id  path  string  true  "appointment id"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/appointments/{id}/complete [post]
func ApiCompleteAppointment(logs *drivelog.Service, badges *gamification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := mw.UserIDFrom(c)
		appt, dlog, err := logs.CompleteAppointment(c.Request.Context(), userID, c.Param("id"), time.Now())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "appointment not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		unlocked, _ := badges.Evaluate(c.Request.Context(), userID)
		c.JSON(http.StatusOK, response.OKT(map[string]any{
			"appointment": appt,
			"log":         dlog,
			"unlocked":    unlocked,
		}))
	}
}

// ApiAppointmentReceipt marks the first trip receipt as issued. The receipt
// itself is rendered client-side; the server only awards the event badge.
func ApiAppointmentReceipt(badges *gamification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := badges.GrantEvent(c.Request.Context(), mw.UserIDFrom(c), gamification.BadgeEntrepreneur); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "recorded"}))
	}
}

func ApiDeleteAppointment(logs *drivelog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := logs.DeleteAppointment(c.Request.Context(), mw.UserIDFrom(c), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "appointment not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func RegisterAppointmentRoutes(r gin.IRouter, logs *drivelog.Service, badges *gamification.Service) {
	r.GET("/appointments", ApiListAppointments(logs))
	r.POST("/appointments", ApiCreateAppointment(logs))
	r.PUT("/appointments/:id", ApiUpdateAppointment(logs))
	r.POST("/appointments/:id/complete", ApiCompleteAppointment(logs, badges))
	r.POST("/appointments/:id/receipt", ApiAppointmentReceipt(badges))
	r.DELETE("/appointments/:id", ApiDeleteAppointment(logs))
}
