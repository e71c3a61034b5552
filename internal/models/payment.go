package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

type PaymentMethod string

type GatewayStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"

	GatewaySuccess   GatewayStatus = "success"
	GatewayFailure   GatewayStatus = "failure"
	GatewayCancelled GatewayStatus = "cancelled"
)

type Payment struct {
	ID            uuid.UUID     `json:"id"`
	OrderID       uuid.UUID     `json:"order_id"`
	UserID        uuid.UUID     `json:"user_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"method"`
	TransactionID *string       `json:"transaction_id,omitempty"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PaymentCustomer is what the gateway needs to open a checkout.
type PaymentCustomer struct {
	UserID             uuid.UUID
	Email              string
	PaymentMethodToken string
	Description        string
	// shared by retries of the same checkout
	IdempotencyKey string
}

// GatewayResult is the outcome reported when the gateway session resumes.
type GatewayResult struct {
	Status        GatewayStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Reason        string        `json:"reason,omitempty"`
}
