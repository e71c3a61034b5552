package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/google/uuid"
)

type CouponService interface {
	Validate(ctx context.Context, check models.CouponCheck) (*models.CouponResult, error)
	Preview(ctx context.Context, subject string, check models.CouponCheck) (*models.CouponResult, error)
	Redeem(ctx context.Context, redemption *models.CouponRedemption) error
}

type couponService struct {
	repo    repository.CouponRepository
	limiter repository.RateLimitRepository
	now     func() time.Time
}

func NewCouponService(repo repository.CouponRepository, limiter repository.RateLimitRepository) CouponService {
	return &couponService{repo: repo, limiter: limiter, now: time.Now}
}

// NormalizeCouponCode makes coupon lookups case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks a code against an order in a fixed order: existence, time
// window, minimum amount, global uses, per-user uses and applicability. The
// first failing check decides the rejection reason. It never consumes a use.
func (s *couponService) Validate(ctx context.Context, check models.CouponCheck) (*models.CouponResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	code := NormalizeCouponCode(check.Code)
	if code == "" {
		return nil, reject(models.CouponNotFound, "Coupon code not found")
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, reject(models.CouponNotFound, "Coupon code not found")
		}

		logger.Error("Failed to look up coupon", slog.String("error", err.Error()))
		return nil, errors.DatabaseError("Failed to validate coupon").WithError(err)
	}

	if !coupon.IsActive {
		return nil, reject(models.CouponNotFound, "Coupon code not found")
	}

	now := s.now()

	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return nil, reject(models.CouponNotStarted, "This coupon is not active yet")
	}

	if coupon.ExpiresAt != nil && !now.Before(*coupon.ExpiresAt) {
		return nil, reject(models.CouponExpired, "This coupon has expired")
	}

	if coupon.MinOrderAmount != nil && check.OrderAmount < *coupon.MinOrderAmount {
		return nil, reject(models.CouponBelowMinimum,
			fmt.Sprintf("Minimum order amount for this coupon is %.2f", *coupon.MinOrderAmount))
	}

	if coupon.MaxUses != nil && coupon.UsesCount >= *coupon.MaxUses {
		return nil, reject(models.CouponExhausted, "This coupon has reached its usage limit")
	}

	if coupon.MaxUsesPerUser != nil && check.UserID != uuid.Nil {
		used, err := s.repo.CountUserRedemptions(ctx, coupon.ID, check.UserID)
		if err != nil {
			logger.Error("Failed to count coupon redemptions", slog.String("error", err.Error()))
			return nil, errors.DatabaseError("Failed to validate coupon").WithError(err)
		}

		if used >= *coupon.MaxUsesPerUser {
			return nil, reject(models.CouponAlreadyUsedByUser, "You have already used this coupon")
		}
	}

	if check.Items != nil && !applies(coupon, check.Items) {
		return nil, reject(models.CouponNotApplicable, "This coupon does not apply to the items in your cart")
	}

	return &models.CouponResult{Coupon: coupon, Discount: Discount(coupon, check.OrderAmount)}, nil
}

// Preview is Validate behind the per-subject lookup limit.
func (s *couponService) Preview(ctx context.Context, subject string, check models.CouponCheck) (*models.CouponResult, error) {

	allowed, _, retryAfter, err := s.limiter.CheckCouponRateLimit(ctx, subject)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many coupon attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	return s.Validate(ctx, check)
}

func (s *couponService) Redeem(ctx context.Context, redemption *models.CouponRedemption) error {

	if redemption.ID == uuid.Nil {
		redemption.ID = uuid.New()
	}

	if err := s.repo.RecordRedemption(ctx, redemption); err != nil {
		return errors.DatabaseError("Failed to record coupon redemption").WithError(err)
	}

	return nil
}

// Discount resolves a coupon against an order amount. It never exceeds the
// amount.
func Discount(coupon *models.Coupon, orderAmount float64) float64 {

	orderAmount = math.Max(0, orderAmount)

	var discount float64

	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = orderAmount * coupon.DiscountValue / 100
	case models.DiscountFixed:
		discount = coupon.DiscountValue
	}

	return pricing.RoundMoney(math.Min(math.Max(0, discount), orderAmount))
}

func applies(coupon *models.Coupon, items []models.CouponItem) bool {

	if coupon.AppliesTo == models.CouponScopeAll || coupon.AppliesTo == "" {
		return true
	}

	targets := make(map[string]struct{}, len(coupon.AppliesToIDs))
	for _, id := range coupon.AppliesToIDs {
		targets[strings.ToLower(strings.TrimSpace(id))] = struct{}{}
	}

	for _, item := range items {
		var id uuid.UUID

		switch coupon.AppliesTo {
		case models.CouponScopeProduct:
			id = item.ProductID
		case models.CouponScopeCategory:
			id = item.CategoryID
		default:
			return false
		}

		if _, ok := targets[id.String()]; ok {
			return true
		}
	}

	return false
}

func reject(reason models.CouponRejection, message string) *errors.AppError {
	metrics.RecordCouponRejection(string(reason))

	return errors.CouponRejectedError(string(reason), message)
}
