package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plutov/paypal/v4"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// Charge is the gateway-neutral view of a created or confirmed payment.
type Charge struct {
	GatewayID    string `json:"gateway_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Status       string `json:"status"`
}

// Gateway abstracts the external processors so the handlers only ever deal
// with cents and gateway ids.
type Gateway interface {
	Name() Method
	CreateCharge(ctx context.Context, amountCents int64, currency, description string) (*Charge, error)
	ConfirmCharge(ctx context.Context, gatewayID string) (*Charge, error)
}

// StripeGateway drives Stripe PaymentIntents.
type StripeGateway struct {
	secretKey string
}

func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &StripeGateway{secretKey: secretKey}
}

func (g *StripeGateway) Name() Method { return MethodStripe }

func (g *StripeGateway) CreateCharge(ctx context.Context, amountCents int64, currency, description string) (*Charge, error) {
	if g.secretKey == "" {
		return nil, ErrGatewayNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountCents),
		Currency:    stripe.String(strings.ToLower(currency)),
		Description: stripe.String(description),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}

	return &Charge{
		GatewayID:    pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

func (g *StripeGateway) ConfirmCharge(ctx context.Context, gatewayID string) (*Charge, error) {
	if g.secretKey == "" {
		return nil, ErrGatewayNotConfigured
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(gatewayID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get intent: %w", err)
	}

	return &Charge{
		GatewayID: pi.ID,
		Status:    string(pi.Status),
	}, nil
}

// PayPalGateway drives PayPal orders.
type PayPalGateway struct {
	client *paypal.Client
}

func NewPayPalGateway(clientID, secret, mode string) (*PayPalGateway, error) {
	if clientID == "" || secret == "" {
		return &PayPalGateway{}, nil
	}

	base := paypal.APIBaseSandBox
	if mode == "live" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}

	return &PayPalGateway{client: client}, nil
}

func (g *PayPalGateway) Name() Method { return MethodPayPal }

func (g *PayPalGateway) CreateCharge(ctx context.Context, amountCents int64, currency, description string) (*Charge, error) {
	if g.client == nil {
		return nil, ErrGatewayNotConfigured
	}

	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal token: %w", err)
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture, []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: strings.ToUpper(currency),
				Value:    fmt.Sprintf("%.2f", float64(amountCents)/100),
			},
			Description: description,
		},
	}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("paypal create order: %w", err)
	}

	return &Charge{
		GatewayID: order.ID,
		Status:    order.Status,
	}, nil
}

func (g *PayPalGateway) ConfirmCharge(ctx context.Context, gatewayID string) (*Charge, error) {
	if g.client == nil {
		return nil, ErrGatewayNotConfigured
	}

	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("paypal token: %w", err)
	}

	capture, err := g.client.CaptureOrder(ctx, gatewayID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("paypal capture order: %w", err)
	}

	return &Charge{
		GatewayID: capture.ID,
		Status:    capture.Status,
	}, nil
}

// LocalGateway records offline payments (cash at the front desk) without
// talking to any processor. Always succeeds.
type LocalGateway struct{}

func NewLocalGateway() *LocalGateway { return &LocalGateway{} }

func (g *LocalGateway) Name() Method { return MethodLocal }

func (g *LocalGateway) CreateCharge(ctx context.Context, amountCents int64, currency, description string) (*Charge, error) {
	return &Charge{
		GatewayID: fmt.Sprintf("local_%d", time.Now().UnixNano()),
		Status:    "succeeded",
	}, nil
}

func (g *LocalGateway) ConfirmCharge(ctx context.Context, gatewayID string) (*Charge, error) {
	return &Charge{GatewayID: gatewayID, Status: "succeeded"}, nil
}
