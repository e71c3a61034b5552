package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/pricing"
	"github.com/aaravmahajanofficial/pawpair-storefront/pkg/stripe"
	stripeapi "github.com/stripe/stripe-go/v81"
)

// PaymentGateway runs one online payment to a terminal result. OpenCheckout
// returns once the gateway reported success, failure or cancellation; a
// successful result still has to pass Verify before it is trusted.
type PaymentGateway interface {
	OpenCheckout(ctx context.Context, amount float64, currency string, customer models.PaymentCustomer) (*models.GatewayResult, error)
	Verify(ctx context.Context, transactionID string, amount float64, currency string) (bool, error)
}

type stripeGateway struct {
	client       stripe.Client
	paymentTypes []string
	pollInterval time.Duration
	maxPolls     int
}

type GatewayOption func(*stripeGateway)

// WithPolling sets how often and how long a processing payment is re-read.
func WithPolling(interval time.Duration, attempts int) GatewayOption {
	return func(g *stripeGateway) {
		g.pollInterval = interval
		g.maxPolls = attempts
	}
}

func NewStripeGateway(client stripe.Client, paymentTypes []string, opts ...GatewayOption) PaymentGateway {

	g := &stripeGateway{
		client:       client,
		paymentTypes: paymentTypes,
		pollInterval: 2 * time.Second,
		maxPolls:     30,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *stripeGateway) OpenCheckout(ctx context.Context, amount float64, currency string, customer models.PaymentCustomer) (*models.GatewayResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	intent, err := g.client.CreatePaymentIntent(ctx, stripe.PaymentIntentRequest{
		Amount:         pricing.ToMinorUnits(amount),
		Currency:       strings.ToLower(currency),
		Description:    customer.Description,
		PaymentMethod:  customer.PaymentMethodToken,
		PaymentTypes:   g.paymentTypes,
		IdempotencyKey: customer.IdempotencyKey,
		Metadata:       map[string]string{"user_id": customer.UserID.String()},
	})
	if err != nil {
		if ctx.Err() != nil {
			return g.cancelled(intent, "payment was abandoned"), nil
		}

		// a declined card comes back as an API error, not as an intent
		var stripeErr *stripeapi.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripeapi.ErrorTypeCard {
			logger.Info("Payment declined", slog.String("code", string(stripeErr.Code)))
			return &models.GatewayResult{Status: models.GatewayFailure, Amount: amount, Currency: currency, Reason: stripeErr.Msg}, nil
		}

		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	for poll := 0; ; poll++ {

		switch intent.Status {
		case stripeapi.PaymentIntentStatusSucceeded:
			return &models.GatewayResult{
				Status:        models.GatewaySuccess,
				TransactionID: intent.ID,
				Amount:        amount,
				Currency:      currency,
			}, nil

		case stripeapi.PaymentIntentStatusCanceled:
			return g.cancelled(intent, string(intent.CancellationReason)), nil

		case stripeapi.PaymentIntentStatusProcessing:
			// keep waiting below

		default:
			reason := string(intent.Status)
			if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
				reason = intent.LastPaymentError.Msg
			}

			return &models.GatewayResult{
				Status:        models.GatewayFailure,
				TransactionID: intent.ID,
				Amount:        amount,
				Currency:      currency,
				Reason:        reason,
			}, nil
		}

		if poll >= g.maxPolls {
			return nil, fmt.Errorf("payment %s still processing after %d checks", intent.ID, g.maxPolls)
		}

		select {
		case <-ctx.Done():
			g.abandon(ctx, intent.ID)
			return g.cancelled(intent, "payment was abandoned"), nil
		case <-time.After(g.pollInterval):
		}

		intent, err = g.client.GetPaymentIntent(ctx, intent.ID)
		if err != nil {
			if ctx.Err() != nil {
				return g.cancelled(intent, "payment was abandoned"), nil
			}
			return nil, fmt.Errorf("failed to read payment intent: %w", err)
		}
	}
}

// Verify re-reads the intent from Stripe instead of trusting the result that
// came back to the caller.
func (g *stripeGateway) Verify(ctx context.Context, transactionID string, amount float64, currency string) (bool, error) {

	logger := middleware.LoggerFromContext(ctx)

	if transactionID == "" {
		return false, nil
	}

	intent, err := g.client.GetPaymentIntent(ctx, transactionID)
	if err != nil {
		return false, fmt.Errorf("failed to verify payment intent: %w", err)
	}

	if intent.Status != stripeapi.PaymentIntentStatusSucceeded {
		logger.Warn("Payment intent not settled", slog.String("transactionId", transactionID), slog.String("status", string(intent.Status)))
		return false, nil
	}

	if intent.Amount != pricing.ToMinorUnits(amount) || !strings.EqualFold(string(intent.Currency), currency) {
		logger.Warn("Payment intent does not match order",
			slog.String("transactionId", transactionID),
			slog.Int64("amount", intent.Amount),
			slog.Int64("expected", pricing.ToMinorUnits(amount)),
			slog.String("currency", string(intent.Currency)))
		return false, nil
	}

	return true, nil
}

func (g *stripeGateway) cancelled(intent *stripeapi.PaymentIntent, reason string) *models.GatewayResult {

	result := &models.GatewayResult{Status: models.GatewayCancelled, Reason: reason}
	if intent != nil {
		result.TransactionID = intent.ID
	}

	return result
}

func (g *stripeGateway) abandon(ctx context.Context, intentID string) {

	if _, err := g.client.CancelPaymentIntent(context.WithoutCancel(ctx), intentID); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to cancel abandoned payment", slog.String("transactionId", intentID), slog.String("error", err.Error()))
	}
}
