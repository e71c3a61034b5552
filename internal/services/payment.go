package service

import (
	"context"
	"database/sql"
	"encoding/json"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/pawpair-storefront/pkg/stripe"
)

// PaymentService applies asynchronous gateway updates to recorded payments.
type PaymentService interface {
	ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error)
}

type paymentService struct {
	payments     repository.PaymentRepository
	orders       repository.OrderRepository
	stripeClient stripe.Client
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.OrderRepository, stripeClient stripe.Client) PaymentService {
	return &paymentService{payments: payments, orders: orders, stripeClient: stripeClient}
}

func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (stripe.Event, error) {

	logger := middleware.LoggerFromContext(ctx)

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return stripe.Event{}, errors.UnauthorizedError("Webhook signature verification failed").WithError(err)
	}

	var (
		intentID string
		status   models.PaymentStatus
	)

	switch event.Type {
	case "payment_intent.succeeded":
		intentID, status = objectField(event, "id"), models.PaymentStatusPaid
	case "payment_intent.payment_failed", "payment_intent.canceled":
		intentID, status = objectField(event, "id"), models.PaymentStatusFailed
	case "charge.refunded":
		intentID, status = objectField(event, "payment_intent"), models.PaymentStatusRefunded
	default:
		logger.Debug("Ignoring webhook event", slog.String("type", string(event.Type)))
		return event, nil
	}

	if intentID == "" {
		return event, errors.BadRequestError("Missing payment intent ID in webhook")
	}

	payment, err := s.payments.GetPaymentByTransactionID(ctx, intentID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			// intents abandoned before an order existed have no payment row
			logger.Info("Webhook for unknown payment", slog.String("transactionId", intentID), slog.String("type", string(event.Type)))
			return event, nil
		}

		return event, errors.DatabaseError("Failed to fetch payment").WithError(err)
	}

	if payment.Status == status {
		return event, nil
	}

	if err := s.payments.UpdateStatusByTransactionID(ctx, intentID, status); err != nil {
		return event, errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	if err := s.orders.UpdatePaymentStatus(ctx, payment.OrderID, status); err != nil {
		return event, errors.DatabaseError("Failed to update order payment status").WithError(err)
	}

	logger.Info("Payment status updated from webhook",
		slog.String("transactionId", intentID),
		slog.String("orderId", payment.OrderID.String()),
		slog.String("status", string(status)))

	return event, nil
}

func objectField(event stripe.Event, field string) string {

	if event.Data == nil {
		return ""
	}

	if value, ok := event.Data.Object[field].(string); ok {
		return value
	}

	// some events only carry the raw object
	var object map[string]any
	if err := json.Unmarshal(event.Data.Raw, &object); err == nil {
		if value, ok := object[field].(string); ok {
			return value
		}
	}

	return ""
}
