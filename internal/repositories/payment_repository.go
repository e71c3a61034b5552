package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/google/uuid"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	UpdateStatusByTransactionID(ctx context.Context, transactionID string, status models.PaymentStatus) error
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	query := `
		INSERT INTO payments (id, order_id, user_id, amount, currency, method, transaction_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	var transactionID sql.NullString
	if payment.TransactionID != nil {
		transactionID = sql.NullString{String: *payment.TransactionID, Valid: true}
	}

	err := r.DB.QueryRowContext(dbCtx, query, payment.ID, payment.OrderID, payment.UserID, payment.Amount, payment.Currency, payment.Method, transactionID, payment.Status).
		Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// Returns sql.ErrNoRows when no payment carries the transaction id.
func (r *paymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	payment := &models.Payment{}

	query := `
		SELECT id, order_id, user_id, amount, currency, method, transaction_id, status, created_at, updated_at
		FROM payments
		WHERE transaction_id = $1
	`

	var txID sql.NullString

	err := r.DB.QueryRowContext(dbCtx, query, transactionID).Scan(&payment.ID, &payment.OrderID, &payment.UserID, &payment.Amount, &payment.Currency, &payment.Method, &txID, &payment.Status, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the payment: %w", err)
	}

	if txID.Valid {
		payment.TransactionID = &txID.String
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatusByTransactionID(ctx context.Context, transactionID string, status models.PaymentStatus) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payments SET status = $1, updated_at = NOW()
		WHERE transaction_id = $2
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update the payment status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
