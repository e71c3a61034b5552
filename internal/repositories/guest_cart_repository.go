package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

// GuestCartRepository is the device-local persistence of an anonymous cart,
// keyed by guest id and never by account.
type GuestCartRepository interface {
	Load(ctx context.Context, guestID string) (*models.GuestCart, error)
	Save(ctx context.Context, guestID string, cart *models.GuestCart) error
	Discard(ctx context.Context, guestID string) error
}

type guestCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestCartRepo(client *redis.Client, ttl time.Duration) GuestCartRepository {
	return &guestCartRepository{client: client, ttl: ttl}
}

func guestCartKey(guestID string) string {
	return "cart:guest:" + guestID
}

// Load returns an empty cart when nothing is stored.
func (r *guestCartRepository) Load(ctx context.Context, guestID string) (*models.GuestCart, error) {

	data, err := r.client.Get(ctx, guestCartKey(guestID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &models.GuestCart{Lines: []models.CartLine{}, Wishlist: []models.WishlistLine{}}, nil
		}
		return nil, fmt.Errorf("failed to load guest cart %s: %w", guestID, err)
	}

	cart := &models.GuestCart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guest cart %s: %w", guestID, err)
	}

	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	if cart.Wishlist == nil {
		cart.Wishlist = []models.WishlistLine{}
	}

	return cart, nil
}

// Save replaces the whole stored document.
func (r *guestCartRepository) Save(ctx context.Context, guestID string, cart *models.GuestCart) error {

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal guest cart: %w", err)
	}

	if err := r.client.Set(ctx, guestCartKey(guestID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart %s: %w", guestID, err)
	}

	return nil
}

func (r *guestCartRepository) Discard(ctx context.Context, guestID string) error {

	if err := r.client.Del(ctx, guestCartKey(guestID)).Err(); err != nil {
		return fmt.Errorf("failed to discard guest cart %s: %w", guestID, err)
	}

	return nil
}
