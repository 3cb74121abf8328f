package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/mercadopago"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/stripepay"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/logctx"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/response"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

const webhookBodyLimit = 1 << 20

// @Summary      Stripe webhook
// @Description  Handles checkout.session.completed and invoice.payment_succeeded, reconciling the subscription.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /webhooks/stripe [post]
func ApiStripeWebhook(log *zap.SugaredLogger, sp *stripepay.Client, bill *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "unreadable body"))
			return
		}
		event, err := sp.VerifyWebhook(body, c.GetHeader("Stripe-Signature"))
		if err != nil {
			logctx.FromGin(c, log).Warnw("stripe signature rejected", "err", err)
			c.JSON(http.StatusBadRequest, response.ErrorMsg(response.APIResponseCodeBadRequest, "bad signature"))
			return
		}

		ctx := c.Request.Context()
		logID := bill.LogEvent(ctx, types.PaymentMethodStripe, string(event.Type), event.ID, body)

		var procErr error
		switch event.Type {
		case "checkout.session.completed":
			var sess stripe.CheckoutSession
			if procErr = json.Unmarshal(event.Data.Raw, &sess); procErr == nil {
				email := ""
				if sess.CustomerDetails != nil {
					email = sess.CustomerDetails.Email
				}
				_, procErr = bill.Renew(ctx, billing.RenewParams{
					UserID: sess.ClientReferenceID,
					Email:  email,
					Method: types.PaymentMethodStripe,
					Amount: decimal.NewFromInt(sess.AmountTotal).Div(decimal.NewFromInt(100)),
					Tier:   types.PlanTier(sess.Metadata["plan"]),
				})
			}
		case "invoice.payment_succeeded":
			var inv stripe.Invoice
			if procErr = json.Unmarshal(event.Data.Raw, &inv); procErr == nil {
				// the first invoice is already covered by checkout.session.completed
				if inv.BillingReason == stripe.InvoiceBillingReasonSubscriptionCreate {
					break
				}
				tier := ""
				if inv.SubscriptionDetails != nil {
					tier = inv.SubscriptionDetails.Metadata["plan"]
				}
				_, procErr = bill.Renew(ctx, billing.RenewParams{
					Email:  inv.CustomerEmail,
					Method: types.PaymentMethodStripe,
					Amount: decimal.NewFromInt(inv.AmountPaid).Div(decimal.NewFromInt(100)),
					Tier:   types.PlanTier(tier),
				})
			}
		default:
			// acknowledged but not acted on
		}

		bill.MarkEvent(ctx, logID, procErr)
		if procErr != nil {
			logctx.FromGin(c, log).Errorw("stripe webhook failed", "type", event.Type, "err", procErr)
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, procErr.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// ApiMercadoPagoWebhook handles Mercado Pago IPN calls. The notification only
// carries a payment id; the payment itself is fetched back from the API and
// reconciled when approved.
func ApiMercadoPagoWebhook(log *zap.SugaredLogger, mp *mercadopago.Client, bill *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.DefaultQuery("type", c.Query("topic"))
		paymentID := c.DefaultQuery("data.id", c.Query("id"))
		if kind != "payment" || paymentID == "" {
			c.JSON(http.StatusOK, response.OKT[any](nil))
			return
		}

		ctx := c.Request.Context()
		logID := bill.LogEvent(ctx, types.PaymentMethodMercadoPago, "payment", paymentID, nil)

		payment, err := mp.GetPayment(ctx, paymentID)
		if err != nil {
			bill.MarkEvent(ctx, logID, err)
			logctx.FromGin(c, log).Errorw("mercadopago lookup failed", "payment_id", paymentID, "err", err)
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		if payment.Status != "approved" {
			bill.MarkEvent(ctx, logID, nil)
			c.JSON(http.StatusOK, response.OKT[any](nil))
			return
		}

		tier := ""
		if v, ok := payment.Metadata["plan"].(string); ok {
			tier = v
		}
		_, procErr := bill.Renew(ctx, billing.RenewParams{
			UserID: payment.ExternalReference,
			Email:  payment.Payer.Email,
			Method: types.PaymentMethodMercadoPago,
			Amount: decimal.NewFromFloat(payment.TransactionAmount),
			Tier:   types.PlanTier(tier),
		})
		bill.MarkEvent(ctx, logID, procErr)
		if procErr != nil {
			logctx.FromGin(c, log).Errorw("mercadopago webhook failed", "payment_id", paymentID, "err", procErr)
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, procErr.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterWebhookRoutes(r gin.IRouter, log *zap.SugaredLogger, sp *stripepay.Client, mp *mercadopago.Client, bill *billing.Service) {
	r.POST("/stripe", ApiStripeWebhook(log, sp, bill))
	r.POST("/mercadopago", ApiMercadoPagoWebhook(log, mp, bill))
	// MP sometimes calls with GET depending on IPN configuration
	r.GET("/mercadopago", ApiMercadoPagoWebhook(log, mp, bill))
}
