package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/fx"

	cfgpkg "github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/tool"
)

const apiBase = "https://api.mercadopago.com"

// Client is a minimal Mercado Pago REST client covering PIX payment creation
// and payment lookup for webhook reconciliation.
type Client struct {
	token string
	base  string
	http  *http.Client
}

func New(cfg *cfgpkg.Config) *Client {
	return &Client{
		token: cfg.MercadoPago.AccessToken,
		base:  apiBase,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

type Payer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
}

type TransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

type PointOfInteraction struct {
	TransactionData TransactionData `json:"transaction_data"`
}

type Payment struct {
	ID                 int64              `json:"id"`
	Status             string             `json:"status"`
	TransactionAmount  float64            `json:"transaction_amount"`
	Description        string             `json:"description"`
	ExternalReference  string             `json:"external_reference"`
	Metadata           map[string]any     `json:"metadata"`
	Payer              Payer              `json:"payer"`
	PointOfInteraction PointOfInteraction `json:"point_of_interaction"`
}

type CreatePaymentRequest struct {
	TransactionAmount float64        `json:"transaction_amount"`
	Description       string         `json:"description"`
	PaymentMethodID   string         `json:"payment_method_id"`
	Payer             Payer          `json:"payer"`
	ExternalReference string         `json:"external_reference"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	NotificationURL   string         `json:"notification_url,omitempty"`
}

// CreatePixPayment creates a PIX charge and returns the payment with QR data.
func (c *Client) CreatePixPayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	req.PaymentMethodID = "pix"
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: marshal payment: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", tool.GenerateUUIDV7())
	return c.do(httpReq)
}

// GetPayment fetches a payment by the id delivered in a webhook.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*Payment, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("mercadopago: status %d: %s", resp.StatusCode, string(b))
	}
	var p Payment
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("mercadopago: decode payment: %w", err)
	}
	return &p, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
