package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxRate(t *testing.T) {
	assert.Equal(t, 0.18, TaxRate("India"))
	assert.Equal(t, 0.18, TaxRate("india"))
	assert.Equal(t, 0.13, TaxRate("NEPAL"))
	assert.Equal(t, 0.08, TaxRate("United States"))
	assert.Equal(t, 0.08, TaxRate("atlantis"))
	assert.Equal(t, 0.08, TaxRate(""))
	assert.Equal(t, 0.13, TaxRate("  nepal  "))
}

func TestComputeTotalsShippingThreshold(t *testing.T) {
	over := ComputeTotals([]Line{{UnitPrice: 51, Quantity: 1}}, "india")
	assert.Equal(t, 0.0, over.ShippingFee)

	under := ComputeTotals([]Line{{UnitPrice: 50, Quantity: 1}}, "india")
	assert.Equal(t, 10.0, under.ShippingFee)

	empty := ComputeTotals(nil, "india")
	assert.Equal(t, 0.0, empty.Subtotal)
	assert.Equal(t, 10.0, empty.ShippingFee)
}

func TestComputeTotalsNepalScenario(t *testing.T) {
	lines := []Line{
		{UnitPrice: 20, Quantity: 2},
		{UnitPrice: 15, Quantity: 1},
	}
	got := ComputeTotals(lines, "Nepal")

	assert.InDelta(t, 55.0, got.Subtotal, 1e-9)
	assert.Equal(t, 0.0, got.ShippingFee)
	assert.InDelta(t, 7.15, got.Tax, 1e-9)
	assert.InDelta(t, 62.15, got.Total, 1e-9)
}

func TestComputeTotalsDeterministic(t *testing.T) {
	lines := []Line{{UnitPrice: 19.99, Quantity: 3}, {UnitPrice: 4.5, Quantity: 2}}
	first := ComputeTotals(lines, "united states")
	second := ComputeTotals(lines, "united states")
	assert.Equal(t, first, second)
	assert.InDelta(t, first.Subtotal+first.ShippingFee+first.Tax, first.Total, 1e-9)
}
