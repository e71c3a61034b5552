package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/pawpair-storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, recipient string, order *models.Order) (*models.Notification, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	currency     string
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService, currency string) NotificationService {
	return &notificationService{repo: repo, emailService: emailService, currency: strings.ToUpper(currency)}
}

// SendOrderConfirmation mails the order summary and logs the attempt. The
// returned notification carries the final status even when sending failed.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, recipient string, order *models.Order) (*models.Notification, error) {

	logger := middleware.LoggerFromContext(ctx)

	if recipient == "" {
		return nil, errors.ValidationError("Recipient is required")
	}

	req := n.confirmationEmail(recipient, order)

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationEmail,
		Recipient: recipient,
		Subject:   req.Subject,
		OrderID:   order.ID,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification record").WithError(err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		notification.Status = models.StatusFailed
		notification.ErrorMessage = err.Error()

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, notification.ErrorMessage); updateErr != nil {
			logger.Warn("Failed to record notification failure", slog.String("error", updateErr.Error()))
		}

		return notification, errors.ThirdPartyError("Failed to send order confirmation").WithError(err)
	}

	notification.Status = models.StatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return notification, errors.DatabaseError("Notification sent but status update failed").WithError(err)
	}

	return notification, nil
}

func (n *notificationService) confirmationEmail(recipient string, order *models.Order) *models.EmailNotificationRequest {

	ref := strings.ToUpper(order.ID.String()[:8])

	var text, rows strings.Builder

	fmt.Fprintf(&text, "Thanks for your order %s.\n\n", ref)

	for _, item := range order.Items {
		sizes := sizeLabel(item.OwnerSize, item.PetSize)
		fmt.Fprintf(&text, "%d x %s (%s)  %.2f\n", item.Quantity, item.Name, sizes, item.UnitPrice*float64(item.Quantity))
		fmt.Fprintf(&rows, "<tr><td>%d &times; %s</td><td>%s</td><td>%.2f</td></tr>",
			item.Quantity, html.EscapeString(item.Name), html.EscapeString(sizes), item.UnitPrice*float64(item.Quantity))
	}

	fmt.Fprintf(&text, "\nTotal: %.2f %s\nPayment: %s\n", order.Totals.Total, n.currency, order.PaymentMethod)

	return &models.EmailNotificationRequest{
		To:      recipient,
		Subject: "Your PawPair order " + ref,
		Content: text.String(),
		HTMLContent: fmt.Sprintf("<p>Thanks for your order <strong>%s</strong>.</p><table>%s</table><p>Total: %.2f %s</p>",
			ref, rows.String(), order.Totals.Total, n.currency),
	}
}

func sizeLabel(ownerSize, petSize string) string {
	switch {
	case ownerSize != "" && petSize != "":
		return "owner " + ownerSize + ", pet " + petSize
	case ownerSize != "":
		return "owner " + ownerSize
	default:
		return "pet " + petSize
	}
}
