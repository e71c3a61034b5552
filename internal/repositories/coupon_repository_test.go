package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var couponColumns = []string{
	"id", "code", "discount_type", "discount_value", "min_order_amount", "starts_at", "expires_at",
	"max_uses", "max_uses_per_user", "uses_count", "is_active", "applies_to", "applies_to_ids",
	"created_at", "updated_at",
}

func TestCouponRepository_FindByCode(t *testing.T) {
	ctx := t.Context()
	couponID := uuid.New()
	now := time.Now()
	expires := now.Add(24 * time.Hour)

	t.Run("Success - All Constraints", func(t *testing.T) {
		// Arrange
		mock, repos := newSQLMock(t)
		categoryID := uuid.NewString()
		rows := sqlmock.NewRows(couponColumns).
			AddRow(couponID.String(), "PAWS10", "percentage", 10.0, 50.0, nil, expires, 100, 1, 7, true, "category", "{"+categoryID+"}", now, now)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE UPPER(code) = $1")).WithArgs("PAWS10").WillReturnRows(rows)

		// Act
		coupon, err := repos.Coupons.FindByCode(ctx, "PAWS10")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, coupon)
		assert.Equal(t, couponID, coupon.ID)
		assert.Equal(t, models.DiscountPercentage, coupon.DiscountType)
		require.NotNil(t, coupon.MinOrderAmount)
		assert.InDelta(t, 50.0, *coupon.MinOrderAmount, 1e-9)
		assert.Nil(t, coupon.StartsAt)
		require.NotNil(t, coupon.ExpiresAt)
		require.NotNil(t, coupon.MaxUses)
		assert.Equal(t, 100, *coupon.MaxUses)
		require.NotNil(t, coupon.MaxUsesPerUser)
		assert.Equal(t, 1, *coupon.MaxUsesPerUser)
		assert.Equal(t, 7, coupon.UsesCount)
		assert.Equal(t, models.CouponScopeCategory, coupon.AppliesTo)
		assert.Equal(t, []string{categoryID}, coupon.AppliesToIDs)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Unconstrained Defaults To All", func(t *testing.T) {
		// Arrange
		mock, repos := newSQLMock(t)
		rows := sqlmock.NewRows(couponColumns).
			AddRow(couponID.String(), "FLAT5", "fixed", 5.0, nil, nil, nil, nil, nil, 0, true, nil, nil, now, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM coupons")).WithArgs("FLAT5").WillReturnRows(rows)

		// Act
		coupon, err := repos.Coupons.FindByCode(ctx, "FLAT5")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, coupon.MinOrderAmount)
		assert.Nil(t, coupon.MaxUses)
		assert.Nil(t, coupon.MaxUsesPerUser)
		assert.Equal(t, models.CouponScopeAll, coupon.AppliesTo)
		assert.Empty(t, coupon.AppliesToIDs)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock, repos := newSQLMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM coupons")).WithArgs("NOPE").WillReturnError(sql.ErrNoRows)

		// Act
		coupon, err := repos.Coupons.FindByCode(ctx, "NOPE")

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, coupon)
	})
}

func TestCouponRepository_CountUserRedemptions(t *testing.T) {
	ctx := t.Context()
	couponID, userID := uuid.New(), uuid.New()

	mock, repos := newSQLMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM coupon_redemptions")).
		WithArgs(couponID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repos.Coupons.CountUserRedemptions(ctx, couponID, userID)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponRepository_RecordRedemption(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	newRedemption := func() *models.CouponRedemption {
		return &models.CouponRedemption{
			ID:              uuid.New(),
			CouponID:        uuid.New(),
			UserID:          uuid.New(),
			OrderID:         uuid.New(),
			DiscountApplied: 12.5,
		}
	}

	t.Run("Success - Insert And Increment In One Transaction", func(t *testing.T) {
		// Arrange
		mock, repos := newSQLMock(t)
		redemption := newRedemption()
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupon_redemptions")).
			WithArgs(redemption.ID, redemption.CouponID, redemption.UserID, redemption.OrderID, 12.5).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE coupons SET uses_count = uses_count + 1")).
			WithArgs(redemption.CouponID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repos.Coupons.RecordRedemption(ctx, redemption)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, redemption.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Increment Rolls Back", func(t *testing.T) {
		// Arrange
		mock, repos := newSQLMock(t)
		redemption := newRedemption()
		dbError := errors.New("serialization failure")
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupon_redemptions")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE coupons")).WillReturnError(dbError)
		mock.ExpectRollback()

		// Act
		err := repos.Coupons.RecordRedemption(ctx, redemption)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Coupon Vanished", func(t *testing.T) {
		// Arrange
		mock, repos := newSQLMock(t)
		redemption := newRedemption()
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO coupon_redemptions")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE coupons")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Act
		err := repos.Coupons.RecordRedemption(ctx, redemption)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
