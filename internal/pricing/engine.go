package pricing

import (
	"math"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
)

// Engine turns a subtotal, a resolved discount and extra fees into order
// totals. It holds no state besides its configuration, so the same inputs
// always price the same.
type Engine struct {
	freeShippingThreshold float64
	standardShippingFee   float64
	taxRate               float64
}

func NewEngine(cfg *config.Pricing) *Engine {
	return &Engine{
		freeShippingThreshold: cfg.FreeShippingThreshold,
		standardShippingFee:   cfg.StandardShippingFee,
		taxRate:               cfg.TaxRate,
	}
}

// Compute prices an order. Negative inputs count as zero and the discount
// never exceeds the subtotal.
func (e *Engine) Compute(subtotal, discount, extraFees float64) models.OrderTotal {

	subtotal = RoundMoney(math.Max(0, subtotal))
	discount = RoundMoney(math.Min(math.Max(0, discount), subtotal))
	extraFees = RoundMoney(math.Max(0, extraFees))

	shipping := e.standardShippingFee
	if subtotal >= e.freeShippingThreshold {
		shipping = 0
	}
	shipping = RoundMoney(shipping)

	// tax applies to goods only, after discount
	tax := RoundMoney(e.taxRate * math.Max(0, subtotal-discount))

	total := RoundMoney(math.Max(0, subtotal-discount+shipping+tax+extraFees))

	return models.OrderTotal{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shipping,
		Tax:          tax,
		GiftWrapFee:  extraFees,
		Total:        total,
	}
}

// Subtotal sums unit price times quantity over the lines.
func Subtotal(lines []models.CartLine) float64 {

	var subtotal float64

	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Quantity)
	}

	return RoundMoney(subtotal)
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToMinorUnits converts an amount to the integer minor units gateways expect.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
