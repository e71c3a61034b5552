package service

import (
	"context"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/google/uuid"
)

// CartService is the account-side cart of authenticated users.
type CartService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	UpsertLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error
	MergeLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error
	DeleteLine(ctx context.Context, userID uuid.UUID, key models.LineKey) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) List(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {

	lines, err := s.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return lines, nil
}

// UpsertLine stores the line with exactly the given quantity.
func (s *cartService) UpsertLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error {

	if line.Quantity < 1 {
		return errors.ValidationError("Quantity must be at least 1")
	}

	if err := s.repo.UpsertLine(ctx, userID, line); err != nil {
		return errors.DatabaseError("Failed to update cart").WithError(err)
	}

	return nil
}

// MergeLine adds the line's quantity to any line with the same key.
func (s *cartService) MergeLine(ctx context.Context, userID uuid.UUID, line models.CartLine) error {

	if line.Quantity < 1 {
		return errors.ValidationError("Quantity must be at least 1")
	}

	if err := s.repo.IncrementLine(ctx, userID, line); err != nil {
		return errors.DatabaseError("Failed to merge cart line").WithError(err)
	}

	return nil
}

func (s *cartService) DeleteLine(ctx context.Context, userID uuid.UUID, key models.LineKey) error {

	if err := s.repo.DeleteLine(ctx, userID, key); err != nil {
		return errors.DatabaseError("Failed to remove cart line").WithError(err)
	}

	return nil
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {

	if err := s.repo.ClearLines(ctx, userID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
