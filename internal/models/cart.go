package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NormalizeSize canonicalizes a garment size label for use in a line key.
// It never fails and normalizing twice gives the same result.
func NormalizeSize(size string) string {
	return strings.ToUpper(strings.Join(strings.Fields(size), " "))
}

// LineKey identifies a cart line: the same product in the same owner and pet
// sizes is always one line.
type LineKey struct {
	ProductID uuid.UUID `json:"product_id"`
	OwnerSize string    `json:"owner_size"`
	PetSize   string    `json:"pet_size"`
}

// KeyOf builds the line key with both sizes normalized.
func KeyOf(productID uuid.UUID, ownerSize, petSize string) LineKey {
	return LineKey{
		ProductID: productID,
		OwnerSize: NormalizeSize(ownerSize),
		PetSize:   NormalizeSize(petSize),
	}
}

// String renders the key as product|owner size|pet size.
func (k LineKey) String() string {
	return k.ProductID.String() + "|" + k.OwnerSize + "|" + k.PetSize
}

type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	ImageRef  string    `json:"image_ref"`
	OwnerSize string    `json:"owner_size"`
	PetSize   string    `json:"pet_size"`
	Quantity  int       `json:"quantity"`
	Slug      string    `json:"slug"`
}

func (l CartLine) Key() LineKey {
	return KeyOf(l.ProductID, l.OwnerSize, l.PetSize)
}

type WishlistLine struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	UnitPrice     float64   `json:"unit_price"`
	ImageRef      string    `json:"image_ref"`
	CategoryLabel string    `json:"category_label"`
	Slug          string    `json:"slug"`
}

type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Count    int     `json:"count"`
}

// GuestCart is the device-local cart kept while no account session exists.
type GuestCart struct {
	Lines     []CartLine     `json:"lines"`
	Wishlist  []WishlistLine `json:"wishlist"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (g *GuestCart) IsEmpty() bool {
	return g == nil || (len(g.Lines) == 0 && len(g.Wishlist) == 0)
}

type CartView struct {
	Lines    []CartLine `json:"lines"`
	Totals   CartTotals `json:"totals"`
	Warnings []string   `json:"warnings,omitempty"`
}

type WishlistView struct {
	Items    []WishlistLine `json:"items"`
	Warnings []string       `json:"warnings,omitempty"`
}

type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	OwnerSize string    `json:"owner_size" validate:"required_without=PetSize,max=16"`
	PetSize   string    `json:"pet_size" validate:"required_without=OwnerSize,max=16"`
}

type RemoveLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	OwnerSize string    `json:"owner_size" validate:"max=16"`
	PetSize   string    `json:"pet_size" validate:"max=16"`
}

// Quantity below 1 removes the line.
type SetQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	OwnerSize string    `json:"owner_size" validate:"max=16"`
	PetSize   string    `json:"pet_size" validate:"max=16"`
	Quantity  int       `json:"quantity" validate:"lte=99"`
}

type WishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
