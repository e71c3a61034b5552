package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/google/uuid"
)

// CartRepository is the account-side cart. One row per line key.
type CartRepository interface {
	ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	UpsertLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error
	IncrementLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error
	DeleteLine(ctx context.Context, userID uuid.UUID, key models.LineKey) error
	ClearLines(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, name, unit_price, image_ref, slug, owner_size, pet_size, quantity
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY created_at, product_id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		var line models.CartLine

		if err := rows.Scan(&line.ProductID, &line.Name, &line.UnitPrice, &line.ImageRef, &line.Slug, &line.OwnerSize, &line.PetSize, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over cart lines: %w", err)
	}

	return lines, nil
}

// UpsertLine writes the line with its exact quantity.
func (r *cartRepository) UpsertLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error {
	return r.writeLine(ctx, userID, line, `quantity = EXCLUDED.quantity`)
}

// IncrementLine adds the line's quantity to an existing line with the same key,
// or inserts it. This is the server-side addLine.
func (r *cartRepository) IncrementLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error {
	return r.writeLine(ctx, userID, line, `quantity = cart_lines.quantity + EXCLUDED.quantity`)
}

func (r *cartRepository) writeLine(ctx context.Context, userID uuid.UUID, line models.CartLine, onConflict string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	key := line.Key()

	query := `
		INSERT INTO cart_lines (user_id, product_id, owner_size, pet_size, name, unit_price, image_ref, slug, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id, product_id, owner_size, pet_size)
		DO UPDATE SET ` + onConflict + `, name = EXCLUDED.name, unit_price = EXCLUDED.unit_price, image_ref = EXCLUDED.image_ref, slug = EXCLUDED.slug, updated_at = NOW()
	`

	_, err := r.DB.ExecContext(dbCtx, query, userID, key.ProductID, key.OwnerSize, key.PetSize, line.Name, line.UnitPrice, line.ImageRef, line.Slug, line.Quantity)
	if err != nil {
		return fmt.Errorf("failed to write cart line: %w", err)
	}

	return nil
}

// DeleteLine is a no-op when the line does not exist.
func (r *cartRepository) DeleteLine(ctx context.Context, userID uuid.UUID, key models.LineKey) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM cart_lines
		WHERE user_id = $1 AND product_id = $2 AND owner_size = $3 AND pet_size = $4
	`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, key.ProductID, key.OwnerSize, key.PetSize); err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}

	return nil
}

func (r *cartRepository) ClearLines(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
