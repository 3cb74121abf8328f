package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/mercadopago"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/stripepay"
	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

type planView struct {
	Tier  types.PlanTier `json:"tier"`
	Price string         `json:"price"`
}

func ApiListPlans(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response.OKT([]planView{
			{Tier: types.PlanTierBasic, Price: cfg.PlanPrice(types.PlanTierBasic).StringFixed(2)},
			{Tier: types.PlanTierPremium, Price: cfg.PlanPrice(types.PlanTierPremium).StringFixed(2)},
		}))
	}
}

// @Summary      Subscription status
// @Tags         Billing
// @Produce      json
// @Success      200  {object}  handlers.RespBillingStatus
// @Router       /api/v1/billing/status [get]
func ApiBillingStatus(acct *account.Service, bill *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		c.JSON(http.StatusOK, response.OKT(bill.Status(user, time.Now())))
	}
}

type checkoutReq struct {
	Tier types.PlanTier `json:"tier" binding:"required"`
}

// ApiStripeCheckout opens a Stripe subscription checkout session. Drivers
// holding referral credit get the discount coupon attached.
func ApiStripeCheckout(acct *account.Service, sp *stripepay.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutReq
		if err := c.ShouldBindJSON(&req); err != nil || !req.Tier.Valid() {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeBadRequest, "invalid plan tier"))
			return
		}
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		sess, err := sp.NewCheckoutSession(stripepay.CheckoutParams{
			UserID:              user.ID,
			Email:               user.Email,
			Tier:                req.Tier,
			ApplyReferralCoupon: user.ReferralBalance > 0 && req.Tier == types.PlanTierPremium,
		})
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"checkout_url": sess.URL}))
	}
}

// ApiPixCharge creates a Mercado Pago PIX charge and returns the QR data.
func ApiPixCharge(acct *account.Service, bill *billing.Service, mp *mercadopago.Client, cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutReq
		if err := c.ShouldBindJSON(&req); err != nil || !req.Tier.Valid() {
			c.JSON(http.StatusOK, response.ErrorMsg(response.APIResponseCodeBadRequest, "invalid plan tier"))
			return
		}
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		amount, _ := bill.PixAmount(req.Tier, user.ReferralBalance).Float64()
		// Mercado Pago rejects non-public callback URLs
		notifyURL := cfg.MercadoPago.NotificationURL
		if strings.Contains(notifyURL, "localhost") || strings.Contains(notifyURL, "127.0.0.1") {
			notifyURL = ""
		}
		payerEmail := user.Email
		if payerEmail == "" {
			payerEmail = "test_user@testuser.com"
		}
		payment, err := mp.CreatePixPayment(c.Request.Context(), mercadopago.CreatePaymentRequest{
			TransactionAmount: amount,
			Description:       "MotoristaPro " + string(req.Tier) + " subscription",
			Payer:             mercadopago.Payer{Email: payerEmail, FirstName: user.Name},
			ExternalReference: user.ID,
			Metadata:          map[string]any{"plan": string(req.Tier)},
			NotificationURL:   notifyURL,
		})
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]any{
			"payment_id":     payment.ID,
			"status":         payment.Status,
			"qr_code":        payment.PointOfInteraction.TransactionData.QRCode,
			"qr_code_base64": payment.PointOfInteraction.TransactionData.QRCodeBase64,
			"ticket_url":     payment.PointOfInteraction.TransactionData.TicketURL,
		}))
	}
}

// ApiBillingPortal redirects to the Stripe customer portal.
func ApiBillingPortal(acct *account.Service, sp *stripepay.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c, acct)
		if user == nil {
			return
		}
		url, err := sp.NewPortalSession(user.Email)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"portal_url": url}))
	}
}

func RegisterBillingRoutes(r gin.IRouter, cfg *cfgpkg.Config, acct *account.Service, bill *billing.Service, sp *stripepay.Client, mp *mercadopago.Client) {
	r.GET("/billing/plans", ApiListPlans(cfg))
	r.GET("/billing/status", ApiBillingStatus(acct, bill))
	r.POST("/billing/checkout", ApiStripeCheckout(acct, sp))
	r.POST("/billing/pix", ApiPixCharge(acct, bill, mp, cfg))
	r.POST("/billing/portal", ApiBillingPortal(acct, sp))
}
