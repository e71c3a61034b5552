package models

import "github.com/google/uuid"

type CheckoutState string

type CheckoutSource string

const (
	CheckoutIdle            CheckoutState = "idle"
	CheckoutValidating      CheckoutState = "validating"
	CheckoutPricingComputed CheckoutState = "pricing_computed"
	CheckoutAwaitingPayment CheckoutState = "awaiting_payment"
	CheckoutOrderCreated    CheckoutState = "order_created"
	CheckoutPaymentRecorded CheckoutState = "payment_recorded"
	CheckoutCleared         CheckoutState = "cleared"
	CheckoutFailed          CheckoutState = "failed"

	CheckoutSourceCart   CheckoutSource = "cart"
	CheckoutSourceBuyNow CheckoutSource = "buy_now"
)

type BuyNowRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	OwnerSize string    `json:"owner_size" validate:"required_without=PetSize,max=16"`
	PetSize   string    `json:"pet_size" validate:"required_without=OwnerSize,max=16"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=99"`
}

type CheckoutRequest struct {
	ShippingAddress    Address        `json:"shipping_address" validate:"required"`
	PaymentMethod      PaymentMethod  `json:"payment_method" validate:"required,oneof=cod online"`
	PaymentMethodToken string         `json:"payment_method_token" validate:"required_if=PaymentMethod online"`
	CouponCode         string         `json:"coupon_code,omitempty" validate:"max=64"`
	GiftWrap           bool           `json:"gift_wrap"`
	GiftMessage        string         `json:"gift_message,omitempty" validate:"max=250"`
	BuyNow             *BuyNowRequest `json:"buy_now,omitempty"`
	IdempotencyKey     string         `json:"idempotency_key,omitempty" validate:"max=128"`
}

// CheckoutResult is the single tagged outcome of a checkout run. State is
// the last state reached; on failure it is CheckoutFailed and FailureCode
// names the reason.
type CheckoutResult struct {
	State         CheckoutState  `json:"state"`
	Source        CheckoutSource `json:"source"`
	OrderID       *uuid.UUID     `json:"order_id,omitempty"`
	PaymentID     *uuid.UUID     `json:"payment_id,omitempty"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Totals        OrderTotal     `json:"totals"`
	CouponCode    string         `json:"coupon_code,omitempty"`
	FailureCode   string         `json:"failure_code,omitempty"`
	Retryable     bool           `json:"retryable"`
	Warnings      []string       `json:"warnings,omitempty"`
}

type QuoteRequest struct {
	CouponCode string `json:"coupon_code,omitempty" validate:"max=64"`
	GiftWrap   bool   `json:"gift_wrap"`
}

// Quote is a pricing preview. A rejected coupon is reported, not raised.
type Quote struct {
	Totals          OrderTotal `json:"totals"`
	CouponCode      string     `json:"coupon_code,omitempty"`
	CouponApplied   bool       `json:"coupon_applied"`
	CouponRejection string     `json:"coupon_rejection,omitempty"`
	CouponMessage   string     `json:"coupon_message,omitempty"`
}
