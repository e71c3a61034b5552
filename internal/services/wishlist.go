package service

import (
	"context"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/google/uuid"
)

type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistLine, error)
	Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error
	Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
}

type wishlistService struct {
	repo repository.WishlistRepository
}

func NewWishlistService(repo repository.WishlistRepository) WishlistService {
	return &wishlistService{repo: repo}
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistLine, error) {

	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch wishlist").WithError(err)
	}

	return items, nil
}

func (s *wishlistService) Add(ctx context.Context, userID uuid.UUID, item models.WishlistLine) error {

	if err := s.repo.Add(ctx, userID, item); err != nil {
		return errors.DatabaseError("Failed to update wishlist").WithError(err)
	}

	return nil
}

func (s *wishlistService) Remove(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {

	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return errors.DatabaseError("Failed to update wishlist").WithError(err)
	}

	return nil
}
