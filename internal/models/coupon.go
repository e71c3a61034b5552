package models

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

type CouponScope string

type CouponRejection string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"

	CouponScopeAll      CouponScope = "all"
	CouponScopeCategory CouponScope = "category"
	CouponScopeProduct  CouponScope = "product"

	CouponNotFound          CouponRejection = "NOT_FOUND"
	CouponNotStarted        CouponRejection = "NOT_STARTED"
	CouponExpired           CouponRejection = "EXPIRED"
	CouponBelowMinimum      CouponRejection = "BELOW_MINIMUM"
	CouponExhausted         CouponRejection = "EXHAUSTED"
	CouponAlreadyUsedByUser CouponRejection = "ALREADY_USED_BY_USER"
	CouponNotApplicable     CouponRejection = "NOT_APPLICABLE"
)

type Coupon struct {
	ID             uuid.UUID    `json:"id"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	MinOrderAmount *float64     `json:"min_order_amount,omitempty"`
	StartsAt       *time.Time   `json:"starts_at,omitempty"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"`
	MaxUses        *int         `json:"max_uses,omitempty"`
	MaxUsesPerUser *int         `json:"max_uses_per_user,omitempty"`
	UsesCount      int          `json:"uses_count"`
	IsActive       bool         `json:"is_active"`
	AppliesTo      CouponScope  `json:"applies_to"`
	AppliesToIDs   []string     `json:"applies_to_ids,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// CouponItem describes one cart product for applicability checks.
type CouponItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	CategoryID uuid.UUID `json:"category_id"`
}

// CouponCheck is the validator input. A nil Items means the cart is unknown
// and the applicability step is skipped.
type CouponCheck struct {
	Code        string
	OrderAmount float64
	UserID      uuid.UUID
	Items       []CouponItem
}

type CouponResult struct {
	Coupon   *Coupon `json:"coupon"`
	Discount float64 `json:"discount"`
}

type CouponRedemption struct {
	ID              uuid.UUID `json:"id"`
	CouponID        uuid.UUID `json:"coupon_id"`
	UserID          uuid.UUID `json:"user_id"`
	OrderID         uuid.UUID `json:"order_id"`
	DiscountApplied float64   `json:"discount_applied"`
	CreatedAt       time.Time `json:"created_at"`
}
