package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	"github.com/google/uuid"
)

// CatalogService is the read side of the catalog used to hydrate cart lines.
type CatalogService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type catalogService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewCatalogService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: c, ttl: ttl}
}

// GetProduct returns only products that can currently be sold.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	product, err := cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*models.Product, error) {
		return s.repo.GetProductByID(ctx, id)
	})
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product == nil || product.Status != models.ProductStatusActive {
		return nil, errors.NotFoundError("Product is not available")
	}

	return product, nil
}
