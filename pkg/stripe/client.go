package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

type (
	Event         = stripe.Event
	PaymentIntent = stripe.PaymentIntent
)

// PaymentIntentRequest opens and confirms a charge in one call. Amount is in
// minor units.
type PaymentIntentRequest struct {
	Amount         int64
	Currency       string
	Description    string
	PaymentMethod  string
	PaymentTypes   []string
	IdempotencyKey string
	Metadata       map[string]string
}

// Client is the subset of the Stripe API the storefront uses.
type Client interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*stripe.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	intents       *paymentintent.Client
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	return &stripeClient{
		intents:       &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: apiKey},
		webhookSecret: webhookSecret,
	}
}

// NewStripeClientWithBackend points the client at a custom backend, such as a
// test server.
func NewStripeClientWithBackend(apiKey, webhookSecret string, backend stripe.Backend) Client {
	return &stripeClient{
		intents:       &paymentintent.Client{B: backend, Key: apiKey},
		webhookSecret: webhookSecret,
	}
}

func (s *stripeClient) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*stripe.PaymentIntent, error) {

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		Description:   stripe.String(req.Description),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
	}

	if len(req.PaymentTypes) > 0 {
		params.PaymentMethodTypes = stripe.StringSlice(req.PaymentTypes)
	}

	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	params.Context = ctx

	return s.intents.New(params)
}

func (s *stripeClient) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	return s.intents.Get(id, params)
}

func (s *stripeClient) CancelPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {

	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	return s.intents.Cancel(id, params)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
