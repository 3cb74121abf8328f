package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mw "github.com/IgorMikael1000/Motorista-Pro/internal/app/api/middleware"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/support"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type createTicketReq struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func ApiCreateTicket(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTicketReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		t, err := sup.Create(c.Request.Context(), mw.UserIDFrom(c), req.Subject, req.Message)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(t))
	}
}

func ApiListTickets(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := sup.ListForUser(c.Request.Context(), mw.UserIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiGetTicket(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := sup.Get(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "ticket not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(t))
	}
}

type ticketReplyReq struct {
	Message string `json:"message" binding:"required"`
}

func ApiReplyTicket(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ticketReplyReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		msg, err := sup.Reply(c.Request.Context(), mw.UserIDFrom(c), c.Param("id"),
			types.TicketSenderUser, req.Message)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "ticket not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(msg))
	}
}

func RegisterSupportRoutes(r gin.IRouter, sup *support.Service) {
	r.GET("/tickets", ApiListTickets(sup))
	r.POST("/tickets", ApiCreateTicket(sup))
	r.GET("/tickets/:id", ApiGetTicket(sup))
	r.POST("/tickets/:id/reply", ApiReplyTicket(sup))
}

// admin inbox

func ApiAdminListTickets(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := sup.ListAll(c.Request.Context(), types.TicketStatus(c.Query("status")))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(out))
	}
}

func ApiAdminGetTicket(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := sup.Get(c.Request.Context(), "", c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "ticket not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(t))
	}
}

func ApiAdminReplyTicket(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ticketReplyReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		msg, err := sup.Reply(c.Request.Context(), "", c.Param("id"), types.TicketSenderAdmin, req.Message)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "ticket not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(msg))
	}
}

func ApiAdminCloseTicket(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sup.Close(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeNotFound, "ticket not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "closed"}))
	}
}

func ApiAdminPurgeTickets(sup *support.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := sup.PurgeClosed(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]any{"deleted": deleted}))
	}
}

func RegisterAdminSupportRoutes(r gin.IRouter, sup *support.Service) {
	r.GET("/tickets", ApiAdminListTickets(sup))
	r.GET("/tickets/:id", ApiAdminGetTicket(sup))
	r.POST("/tickets/:id/reply", ApiAdminReplyTicket(sup))
	r.POST("/tickets/:id/close", ApiAdminCloseTicket(sup))
	r.POST("/tickets/purge", ApiAdminPurgeTickets(sup))
}
