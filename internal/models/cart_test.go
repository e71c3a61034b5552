package models_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"M", "M"},
		{" m ", "M"},
		{"\tm\n", "M"},
		{"x   large", "X LARGE"},
		{"Xl", "XL"},
		{"2  Yrs ", "2 YRS"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := models.NormalizeSize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, models.NormalizeSize(got), "normalizing twice must be stable")
		})
	}
}

func TestKeyOf(t *testing.T) {
	productID := uuid.New()

	assert.Equal(t, models.KeyOf(productID, " m ", "s"), models.KeyOf(productID, "M", " S"))
	assert.NotEqual(t, models.KeyOf(productID, "M", "S"), models.KeyOf(productID, "M", "L"))
	assert.NotEqual(t, models.KeyOf(productID, "M", ""), models.KeyOf(uuid.New(), "M", ""))

	line := models.CartLine{ProductID: productID, OwnerSize: "m", PetSize: " xs"}
	assert.Equal(t, models.KeyOf(productID, "M", "XS"), line.Key())
	assert.Equal(t, productID.String()+"|M|XS", line.Key().String())
}

func TestGuestCartIsEmpty(t *testing.T) {
	var nilCart *models.GuestCart

	assert.True(t, nilCart.IsEmpty())
	assert.True(t, (&models.GuestCart{}).IsEmpty())
	assert.False(t, (&models.GuestCart{Lines: []models.CartLine{{ProductID: uuid.New(), Quantity: 1}}}).IsEmpty())
	assert.False(t, (&models.GuestCart{Wishlist: []models.WishlistLine{{ProductID: uuid.New()}}}).IsEmpty())
}
