package stripepay

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/fx"

	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/types"
)

// Client wraps the Stripe API for subscription checkout and webhooks.
type Client struct {
	api *client.API
	cfg *cfgpkg.Config
}

func New(cfg *cfgpkg.Config) *Client {
	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)
	return &Client{api: api, cfg: cfg}
}

type CheckoutParams struct {
	UserID string
	Email  string
	Tier   types.PlanTier
	// ApplyReferralCoupon attaches the referral discount coupon to the session.
	ApplyReferralCoupon bool
}

func (c *Client) priceID(tier types.PlanTier) string {
	if tier == types.PlanTierBasic {
		return c.cfg.Stripe.PriceBasic
	}
	return c.cfg.Stripe.PricePremium
}

// NewCheckoutSession creates a subscription checkout session. The user id
// travels as client_reference_id and the tier as metadata so the webhook can
// reconcile without guessing.
func (c *Client) NewCheckoutSession(p CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		ClientReferenceID: stripe.String(p.UserID),
		CustomerEmail:     stripe.String(p.Email),
		SuccessURL:        stripe.String(c.cfg.Stripe.SuccessURL),
		CancelURL:         stripe.String(c.cfg.Stripe.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(c.priceID(p.Tier)), Quantity: stripe.Int64(1)},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"plan": string(p.Tier)},
		},
	}
	params.AddMetadata("plan", string(p.Tier))
	if p.ApplyReferralCoupon && c.cfg.Stripe.ReferralCouponID != "" {
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(c.cfg.Stripe.ReferralCouponID)},
		}
	}
	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess, nil
}

// NewPortalSession opens the Stripe billing portal for the customer that owns
// the given email. Returns the redirect URL.
func (c *Client) NewPortalSession(email string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Limit = stripe.Int64(1)
	it := c.api.Customers.List(listParams)
	if !it.Next() {
		if err := it.Err(); err != nil {
			return "", fmt.Errorf("stripe customer lookup: %w", err)
		}
		return "", fmt.Errorf("no stripe customer for %s", email)
	}
	cust := it.Customer()
	sess, err := c.api.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(cust.ID),
		ReturnURL: stripe.String(c.cfg.Stripe.PortalReturnURL),
	})
	if err != nil {
		return "", fmt.Errorf("stripe portal session: %w", err)
	}
	return sess.URL, nil
}

// VerifyWebhook checks the Stripe-Signature header and parses the event.
func (c *Client) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.cfg.Stripe.WebhookSecret)
}

var Module = fx.Options(
	fx.Provide(New),
)
