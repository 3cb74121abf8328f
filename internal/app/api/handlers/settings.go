package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/internal/models"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/money"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

func ApiGetSettings(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := set.All(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		// merge defaults so the client always sees the full key set
		merged := settings.Defaults()
		for k, v := range all {
			merged[k] = v
		}
		c.JSON(http.StatusOK, response.OKT(merged))
	}
}

// ApiSetSettings upserts a batch of config entries. Unknown keys are
// dropped rather than rejected.
func ApiSetSettings(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var values map[string]string
		if err := c.ShouldBindJSON(&values); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		known := settings.Defaults()
		filtered := map[string]string{}
		for k, v := range values {
			if _, ok := known[k]; ok {
				filtered[k] = v
			}
		}
		if err := set.SetMany(c.Request.Context(), mw.UserIDFrom(c), filtered); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(filtered))
	}
}

type weeklyGoalReq struct {
	Goal string `json:"goal" binding:"required"`
}

func ApiSetWeeklyGoal(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req weeklyGoalReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		goal := money.Parse(req.Goal)
		if err := set.Set(c.Request.Context(), mw.UserIDFrom(c), settings.KeyWeeklyGoal, goal.String()); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"weekly_goal": goal.String()}))
	}
}

func ApiListFixedCosts(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		costs, err := set.FixedCosts(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(costs))
	}
}

type fixedCostReq struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
	Kind  string `json:"kind" binding:"required,oneof=insurance tax rent financing"`
}

func ApiCreateFixedCost(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fixedCostReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		cost := &models.FixedCost{
			UserID: mw.UserIDFrom(c),
			Name:   req.Name,
			Value:  money.Parse(req.Value),
			Kind:   req.Kind,
		}
		if err := set.CreateFixedCost(c.Request.Context(), cost); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(cost))
	}
}

func ApiUpdateFixedCost(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fixedCostReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		err := set.UpdateFixedCost(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"),
			req.Name, money.Parse(req.Value), req.Kind)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "cost not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "updated"}))
	}
}

func ApiDeleteFixedCost(set *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := set.DeleteFixedCost(c.Request.Context(), mw.UserIDFrom(c), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "cost not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "deleted"}))
	}
}

func RegisterSettingsRoutes(r gin.IRouter, set *settings.Service) {
	r.GET("/settings", ApiGetSettings(set))
	r.PUT("/settings", ApiSetSettings(set))
	r.PUT("/settings/weekly-goal", ApiSetWeeklyGoal(set))
	r.GET("/fixed-costs", ApiListFixedCosts(set))
	r.POST("/fixed-costs", ApiCreateFixedCost(set))
	r.PUT("/fixed-costs/:id", ApiUpdateFixedCost(set))
	r.DELETE("/fixed-costs/:id", ApiDeleteFixedCost(set))
}
