// Package pricing computes order totals. All functions are pure; totals are
// computed exactly once per aggregate and never recomputed, so rounding is
// deferred to presentation.
package pricing

import "strings"

// Free shipping applies above this subtotal; below it a flat fee is charged.
const (
	freeShippingThreshold = 50.0
	flatShippingFee       = 10.0
	defaultTaxRate        = 0.08
)

var taxRates = map[string]float64{
	"united states": 0.08,
	"india":         0.18,
	"nepal":         0.13,
}

// Line is the priced quantity pricing needs from a cart or order line.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Totals is the computed money breakdown of an order.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shippingFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// TaxRate returns the rate for a destination country, case-insensitively.
// Unknown or empty countries fall back to the default rate.
func TaxRate(country string) float64 {
	if rate, ok := taxRates[strings.ToLower(strings.TrimSpace(country))]; ok {
		return rate
	}
	return defaultTaxRate
}

// ComputeTotals maps line items and a destination country to the order money
// breakdown: subtotal, flat-rate shipping with a free threshold, country tax,
// and the grand total.
func ComputeTotals(lines []Line, country string) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}

	shippingFee := flatShippingFee
	if subtotal > freeShippingThreshold {
		shippingFee = 0
	}

	tax := subtotal * TaxRate(country)

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Tax:         tax,
		Total:       subtotal + shippingFee + tax,
	}
}
