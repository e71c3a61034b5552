package utils

import (
	"html"
	"strings"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from free text entered by shoppers.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func SanitizeAddress(a models.Address) models.Address {
	return models.Address{
		FullName:   SanitizeText(a.FullName),
		Phone:      SanitizeText(a.Phone),
		Line1:      SanitizeText(a.Line1),
		Line2:      SanitizeText(a.Line2),
		City:       SanitizeText(a.City),
		State:      SanitizeText(a.State),
		PostalCode: SanitizeText(a.PostalCode),
		Country:    strings.ToUpper(SanitizeText(a.Country)),
	}
}
