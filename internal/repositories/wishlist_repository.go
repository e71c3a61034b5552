package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/google/uuid"
)

type WishlistRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistLine, error)
	Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error
	Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepo(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, name, unit_price, image_ref, category_label, slug
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at, product_id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	items := []models.WishlistLine{}

	for rows.Next() {
		var item models.WishlistLine

		if err := rows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.ImageRef, &item.CategoryLabel, &item.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over wishlist: %w", err)
	}

	return items, nil
}

// Add keeps the first entry for a product.
func (r *wishlistRepository) Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO wishlist_items (user_id, product_id, name, unit_price, image_ref, category_label, slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	_, err := r.DB.ExecContext(dbCtx, query, userID, item.ProductID, item.Name, item.UnitPrice, item.ImageRef, item.CategoryLabel, item.Slug)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return nil
}
