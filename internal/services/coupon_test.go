package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/pawpair-storefront/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func newCoupon(discountType models.DiscountType, value float64) *models.Coupon {
	return &models.Coupon{
		ID:            uuid.New(),
		Code:          "PAWS10",
		DiscountType:  discountType,
		DiscountValue: value,
		IsActive:      true,
		AppliesTo:     models.CouponScopeAll,
	}
}

func setupCouponTest(t *testing.T) (*mocks.CouponRepository, *mocks.RateLimitRepository, service.CouponService) {
	repo := mocks.NewCouponRepository(t)
	limiter := mocks.NewRateLimitRepository(t)

	return repo, limiter, service.NewCouponService(repo, limiter)
}

func assertRejected(t *testing.T, err error, reason models.CouponRejection) *appErrors.AppError {
	t.Helper()

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrCodeCouponRejected, appErr.Code)
	assert.Equal(t, string(reason), appErr.Detail)

	return appErr
}

func TestCouponValidate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Percentage", func(t *testing.T) {
		// Arrange
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountPercentage, 10)
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		// Act
		result, err := svc.Validate(ctx, models.CouponCheck{Code: "  paws10 ", OrderAmount: 45.50, UserID: userID})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, coupon, result.Coupon)
		assert.InDelta(t, 4.55, result.Discount, 1e-9)
	})

	t.Run("Success - Fixed discount is capped at the order amount", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		repo.On("FindByCode", ctx, "PAWS10").Return(newCoupon(models.DiscountFixed, 50), nil).Once()

		result, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		require.NoError(t, err)
		assert.Equal(t, 40.0, result.Discount)
	})

	t.Run("Not Found", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		repo.On("FindByCode", ctx, "NOPE").Return(nil, sql.ErrNoRows).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "nope", OrderAmount: 40})

		assertRejected(t, err, models.CouponNotFound)
	})

	t.Run("Blank code", func(t *testing.T) {
		_, _, svc := setupCouponTest(t)

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "   ", OrderAmount: 40})

		assertRejected(t, err, models.CouponNotFound)
	})

	t.Run("Inactive is reported as not found", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.IsActive = false
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		assertRejected(t, err, models.CouponNotFound)
	})

	t.Run("Not Started", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.StartsAt = ptr(time.Now().Add(time.Hour))
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		assertRejected(t, err, models.CouponNotStarted)
	})

	t.Run("Expired", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.ExpiresAt = ptr(time.Now().Add(-time.Minute))
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		assertRejected(t, err, models.CouponExpired)
	})

	t.Run("Below Minimum surfaces the minimum", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.MinOrderAmount = ptr(75.0)
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		appErr := assertRejected(t, err, models.CouponBelowMinimum)
		assert.Contains(t, appErr.Message, "75.00")
	})

	t.Run("Exhausted", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.MaxUses = ptr(100)
		coupon.UsesCount = 100
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40, UserID: userID})

		assertRejected(t, err, models.CouponExhausted)
	})

	t.Run("Already Used By User", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.MaxUsesPerUser = ptr(1)
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()
		repo.On("CountUserRedemptions", ctx, coupon.ID, userID).Return(1, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40, UserID: userID})

		assertRejected(t, err, models.CouponAlreadyUsedByUser)
	})

	t.Run("Per-user limit is skipped without a user", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.MaxUsesPerUser = ptr(1)
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		result, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		require.NoError(t, err)
		assert.Equal(t, 5.0, result.Discount)
	})

	t.Run("Not Applicable to the cart", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.AppliesTo = models.CouponScopeCategory
		coupon.AppliesToIDs = []string{uuid.NewString()}
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{
			Code:        "PAWS10",
			OrderAmount: 40,
			Items:       []models.CouponItem{{ProductID: uuid.New(), CategoryID: uuid.New()}},
		})

		assertRejected(t, err, models.CouponNotApplicable)
	})

	t.Run("Applicable by product", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		productID := uuid.New()
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.AppliesTo = models.CouponScopeProduct
		coupon.AppliesToIDs = []string{productID.String()}
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		result, err := svc.Validate(ctx, models.CouponCheck{
			Code:        "PAWS10",
			OrderAmount: 40,
			Items:       []models.CouponItem{{ProductID: uuid.New()}, {ProductID: productID}},
		})

		require.NoError(t, err)
		assert.Equal(t, 5.0, result.Discount)
	})

	t.Run("Unknown cart skips applicability", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.AppliesTo = models.CouponScopeCategory
		coupon.AppliesToIDs = []string{uuid.NewString()}
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		assert.NoError(t, err)
	})

	t.Run("Checks run in order", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		coupon := newCoupon(models.DiscountFixed, 5)
		coupon.ExpiresAt = ptr(time.Now().Add(-time.Minute))
		coupon.MinOrderAmount = ptr(500.0)
		coupon.MaxUses = ptr(1)
		coupon.UsesCount = 1
		repo.On("FindByCode", ctx, "PAWS10").Return(coupon, nil).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		assertRejected(t, err, models.CouponExpired)
	})

	t.Run("Database Error", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		dbErr := errors.New("connection reset")
		repo.On("FindByCode", ctx, "PAWS10").Return(nil, dbErr).Once()

		_, err := svc.Validate(ctx, models.CouponCheck{Code: "PAWS10", OrderAmount: 40})

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestCouponPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("Allowed", func(t *testing.T) {
		repo, limiter, svc := setupCouponTest(t)
		limiter.On("CheckCouponRateLimit", ctx, "user-1").Return(true, 4, 0, nil).Once()
		repo.On("FindByCode", ctx, "PAWS10").Return(newCoupon(models.DiscountFixed, 5), nil).Once()

		result, err := svc.Preview(ctx, "user-1", models.CouponCheck{Code: "paws10", OrderAmount: 40})

		require.NoError(t, err)
		assert.Equal(t, 5.0, result.Discount)
	})

	t.Run("Rate Limited", func(t *testing.T) {
		_, limiter, svc := setupCouponTest(t)
		limiter.On("CheckCouponRateLimit", ctx, "user-1").Return(false, 0, 12, nil).Once()

		result, err := svc.Preview(ctx, "user-1", models.CouponCheck{Code: "paws10", OrderAmount: 40})

		assert.Nil(t, result)
		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		assert.Contains(t, appErr.Detail, "12")
	})

	t.Run("Limiter Error", func(t *testing.T) {
		_, limiter, svc := setupCouponTest(t)
		limiter.On("CheckCouponRateLimit", ctx, "user-1").Return(false, 0, 0, errors.New("redis down")).Once()

		_, err := svc.Preview(ctx, "user-1", models.CouponCheck{Code: "paws10", OrderAmount: 40})

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestCouponRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		redemption := &models.CouponRedemption{CouponID: uuid.New(), UserID: uuid.New(), OrderID: uuid.New(), DiscountApplied: 5}
		repo.On("RecordRedemption", ctx, redemption).Return(nil).Once()

		require.NoError(t, svc.Redeem(ctx, redemption))
		assert.NotEqual(t, uuid.Nil, redemption.ID)
	})

	t.Run("Database Error", func(t *testing.T) {
		repo, _, svc := setupCouponTest(t)
		repo.On("RecordRedemption", ctx, mock.AnythingOfType("*models.CouponRedemption")).Return(errors.New("deadlock")).Once()

		err := svc.Redeem(ctx, &models.CouponRedemption{})

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name   string
		coupon *models.Coupon
		amount float64
		want   float64
	}{
		{"percentage", newCoupon(models.DiscountPercentage, 15), 200, 30},
		{"percentage rounds to cents", newCoupon(models.DiscountPercentage, 12.5), 10.01, 1.25},
		{"fixed below amount", newCoupon(models.DiscountFixed, 10), 40, 10},
		{"fixed above amount", newCoupon(models.DiscountFixed, 50), 40, 40},
		{"negative amount", newCoupon(models.DiscountFixed, 10), -5, 0},
		{"over 100 percent", newCoupon(models.DiscountPercentage, 150), 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, service.Discount(tt.coupon, tt.amount), 1e-9)
		})
	}
}
