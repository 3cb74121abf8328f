package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/gamification"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/notify"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
)

func ApiReferralStats(acct *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		stats, err := acct.ReferralStats(c.Request.Context(), user)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(stats))
	}
}

func ApiListBadges(badges *gamification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := badges.List(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(list))
	}
}

func ApiUnseenBadges(badges *gamification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := badges.Unseen(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiMarkBadgesSeen(badges *gamification.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := badges.MarkSeen(c.Request.Context(), mw.UserIDFrom(c)); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "seen"}))
	}
}

func ApiListNotifications(n *notify.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := n.List(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiMarkNotificationRead(n *notify.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := n.MarkRead(c.Request.Context(), mw.UserIDFrom(c), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "notification not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "read"}))
	}
}

func ApiMarkAllNotificationsRead(n *notify.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := n.MarkAllRead(c.Request.Context(), mw.UserIDFrom(c)); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "read"}))
	}
}

func ApiClearNotifications(n *notify.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := n.Clear(c.Request.Context(), mw.UserIDFrom(c)); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "cleared"}))
	}
}

func RegisterEngagementRoutes(r gin.IRouter, acct *account.Service, badges *gamification.Service, n *notify.Service) {
	r.GET("/referral", ApiReferralStats(acct))
	r.GET("/achievements", ApiListBadges(badges))
	r.GET("/achievements/unseen", ApiUnseenBadges(badges))
	r.POST("/achievements/seen", ApiMarkBadgesSeen(badges))
	r.GET("/notifications", ApiListNotifications(n))
	r.POST("/notifications/:id/read", ApiMarkNotificationRead(n))
	r.POST("/notifications/read-all", ApiMarkAllNotificationsRead(n))
	r.DELETE("/notifications", ApiClearNotifications(n))
}
