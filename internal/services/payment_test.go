package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pawpair-storefront/internal/services"
	stripeMocks "github.com/aaravmahajanofficial/pawpair-storefront/pkg/stripe/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripeapi "github.com/stripe/stripe-go/v81"
)

var (
	webhookPayload   = []byte(`{"id":"evt_1"}`)
	webhookSignature = "t=1,v1=abc"
)

func setupPaymentTest(t *testing.T) (*mocks.PaymentRepository, *mocks.OrderRepository, *stripeMocks.Client, service.PaymentService) {
	payments := mocks.NewPaymentRepository(t)
	orders := mocks.NewOrderRepository(t)
	client := stripeMocks.NewClient(t)

	return payments, orders, client, service.NewPaymentService(payments, orders, client)
}

func webhookEvent(eventType string, object map[string]any) stripeapi.Event {
	return stripeapi.Event{
		ID:   "evt_1",
		Type: stripeapi.EventType(eventType),
		Data: &stripeapi.EventData{Object: object},
	}
}

func TestProcessWebhook(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Succeeded Marks Payment And Order Paid", func(t *testing.T) {
		// Arrange
		payments, orders, client, svc := setupPaymentTest(t)
		event := webhookEvent("payment_intent.succeeded", map[string]any{"id": "pi_1"})
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).Return(event, nil).Once()
		payments.On("GetPaymentByTransactionID", ctx, "pi_1").
			Return(&models.Payment{OrderID: orderID, Status: models.PaymentStatusPending}, nil).Once()
		payments.On("UpdateStatusByTransactionID", ctx, "pi_1", models.PaymentStatusPaid).Return(nil).Once()
		orders.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusPaid).Return(nil).Once()

		// Act
		result, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "evt_1", result.ID)
	})

	t.Run("Failed Intent", func(t *testing.T) {
		payments, orders, client, svc := setupPaymentTest(t)
		event := webhookEvent("payment_intent.payment_failed", map[string]any{"id": "pi_2"})
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).Return(event, nil).Once()
		payments.On("GetPaymentByTransactionID", ctx, "pi_2").
			Return(&models.Payment{OrderID: orderID, Status: models.PaymentStatusPaid}, nil).Once()
		payments.On("UpdateStatusByTransactionID", ctx, "pi_2", models.PaymentStatusFailed).Return(nil).Once()
		orders.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusFailed).Return(nil).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		require.NoError(t, err)
	})

	t.Run("Refund Reads The Charge's Intent", func(t *testing.T) {
		payments, orders, client, svc := setupPaymentTest(t)
		event := webhookEvent("charge.refunded", map[string]any{"id": "ch_1", "payment_intent": "pi_3"})
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).Return(event, nil).Once()
		payments.On("GetPaymentByTransactionID", ctx, "pi_3").
			Return(&models.Payment{OrderID: orderID, Status: models.PaymentStatusPaid}, nil).Once()
		payments.On("UpdateStatusByTransactionID", ctx, "pi_3", models.PaymentStatusRefunded).Return(nil).Once()
		orders.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusRefunded).Return(nil).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		require.NoError(t, err)
	})

	t.Run("Redelivery Is A No-op", func(t *testing.T) {
		payments, _, client, svc := setupPaymentTest(t)
		event := webhookEvent("payment_intent.succeeded", map[string]any{"id": "pi_1"})
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).Return(event, nil).Once()
		payments.On("GetPaymentByTransactionID", ctx, "pi_1").
			Return(&models.Payment{OrderID: orderID, Status: models.PaymentStatusPaid}, nil).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		require.NoError(t, err)
	})

	t.Run("Unknown Payment Is Ignored", func(t *testing.T) {
		payments, _, client, svc := setupPaymentTest(t)
		event := webhookEvent("payment_intent.canceled", map[string]any{"id": "pi_9"})
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).Return(event, nil).Once()
		payments.On("GetPaymentByTransactionID", ctx, "pi_9").Return(nil, sql.ErrNoRows).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		require.NoError(t, err)
	})

	t.Run("Unhandled Event Type", func(t *testing.T) {
		_, _, client, svc := setupPaymentTest(t)
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).
			Return(webhookEvent("customer.created", map[string]any{"id": "cus_1"}), nil).Once()

		result, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		require.NoError(t, err)
		assert.Equal(t, stripeapi.EventType("customer.created"), result.Type)
	})

	t.Run("Missing Intent ID", func(t *testing.T) {
		_, _, client, svc := setupPaymentTest(t)
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).
			Return(webhookEvent("payment_intent.succeeded", map[string]any{}), nil).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		assertCode(t, err, appErrors.ErrCodeBadRequest)
	})

	t.Run("Invalid Signature", func(t *testing.T) {
		_, _, client, svc := setupPaymentTest(t)
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).
			Return(stripeapi.Event{}, errors.New("signature mismatch")).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		assertCode(t, err, appErrors.ErrCodeUnauthorized)
	})

	t.Run("Order Update Fails", func(t *testing.T) {
		payments, orders, client, svc := setupPaymentTest(t)
		event := webhookEvent("payment_intent.succeeded", map[string]any{"id": "pi_1"})
		client.On("VerifyWebhookSignature", webhookPayload, webhookSignature).Return(event, nil).Once()
		payments.On("GetPaymentByTransactionID", ctx, "pi_1").
			Return(&models.Payment{OrderID: orderID, Status: models.PaymentStatusPending}, nil).Once()
		payments.On("UpdateStatusByTransactionID", ctx, "pi_1", models.PaymentStatusPaid).Return(nil).Once()
		orders.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusPaid).Return(errors.New("db down")).Once()

		_, err := svc.ProcessWebhook(ctx, webhookPayload, webhookSignature)

		assertCode(t, err, appErrors.ErrCodeDatabaseError)
	})
}
