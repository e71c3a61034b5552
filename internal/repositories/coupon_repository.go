package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	CountUserRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int, error)
	RecordRedemption(ctx context.Context, redemption *models.CouponRedemption) error
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

// FindByCode expects an already normalized code. Returns sql.ErrNoRows when
// no coupon has that code.
func (r *couponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, code, discount_type, discount_value, min_order_amount, starts_at, expires_at,
		       max_uses, max_uses_per_user, uses_count, is_active, applies_to, applies_to_ids,
		       created_at, updated_at
		FROM coupons
		WHERE UPPER(code) = $1
	`

	coupon := &models.Coupon{}

	var (
		minOrder       sql.NullFloat64
		startsAt       sql.NullTime
		expiresAt      sql.NullTime
		maxUses        sql.NullInt64
		maxUsesPerUser sql.NullInt64
		appliesTo      sql.NullString
		appliesToIDs   pq.StringArray
	)

	err := r.DB.QueryRowContext(dbCtx, query, code).Scan(
		&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue, &minOrder, &startsAt, &expiresAt,
		&maxUses, &maxUsesPerUser, &coupon.UsesCount, &coupon.IsActive, &appliesTo, &appliesToIDs,
		&coupon.CreatedAt, &coupon.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}

	if minOrder.Valid {
		coupon.MinOrderAmount = &minOrder.Float64
	}
	if startsAt.Valid {
		coupon.StartsAt = &startsAt.Time
	}
	if expiresAt.Valid {
		coupon.ExpiresAt = &expiresAt.Time
	}
	if maxUses.Valid {
		v := int(maxUses.Int64)
		coupon.MaxUses = &v
	}
	if maxUsesPerUser.Valid {
		v := int(maxUsesPerUser.Int64)
		coupon.MaxUsesPerUser = &v
	}

	coupon.AppliesTo = models.CouponScopeAll
	if appliesTo.Valid && appliesTo.String != "" {
		coupon.AppliesTo = models.CouponScope(appliesTo.String)
	}
	coupon.AppliesToIDs = []string(appliesToIDs)

	return coupon, nil
}

func (r *couponRepository) CountUserRedemptions(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT COUNT(*) FROM coupon_redemptions WHERE coupon_id = $1 AND user_id = $2`

	var count int
	if err := r.DB.QueryRowContext(dbCtx, query, couponID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count coupon redemptions: %w", err)
	}

	return count, nil
}

// RecordRedemption stores the redemption and bumps the coupon's uses_count in
// one transaction.
func (r *couponRepository) RecordRedemption(ctx context.Context, redemption *models.CouponRedemption) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if redemption.ID == uuid.Nil {
		redemption.ID = uuid.New()
	}

	insert := `
		INSERT INTO coupon_redemptions (id, coupon_id, user_id, order_id, discount_applied, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err = tx.QueryRowContext(dbCtx, insert, redemption.ID, redemption.CouponID, redemption.UserID, redemption.OrderID, redemption.DiscountApplied).Scan(&redemption.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert coupon redemption: %w", err)
	}

	result, err := tx.ExecContext(dbCtx, `UPDATE coupons SET uses_count = uses_count + 1, updated_at = NOW() WHERE id = $1`, redemption.CouponID)
	if err != nil {
		return fmt.Errorf("failed to increment coupon uses: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit coupon redemption: %w", err)
	}

	return nil
}
