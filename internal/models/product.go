package models

import (
	"time"

	"github.com/google/uuid"
)

const ProductStatusActive = "active"

// Product is the catalog read used to hydrate cart and wishlist lines.
type Product struct {
	ID            uuid.UUID `json:"id"`
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryLabel string    `json:"category_label"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	ImageRef      string    `json:"image_ref"`
	Slug          string    `json:"slug"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Product) CartLine() CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  p.ImageRef,
		Slug:      p.Slug,
	}
}

func (p *Product) WishlistLine() WishlistLine {
	return WishlistLine{
		ProductID:     p.ID,
		Name:          p.Name,
		UnitPrice:     p.Price,
		ImageRef:      p.ImageRef,
		CategoryLabel: p.CategoryLabel,
		Slug:          p.Slug,
	}
}
