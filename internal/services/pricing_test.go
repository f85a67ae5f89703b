package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []PricedLine
		expected Totals
	}{
		{
			name: "two products with fees and tax",
			lines: []PricedLine{
				{ProductID: 1, Quantity: 2, UnitPrice: 100},
				{ProductID: 2, Quantity: 1, UnitPrice: 50},
			},
			expected: Totals{
				Subtotal:   250.00,
				Fees:       115.00,
				Tax:        12.50,
				GrandTotal: 377.50,
			},
		},
		{
			name:     "empty cart yields all zero totals, fees included",
			lines:    nil,
			expected: Totals{},
		},
		{
			name: "single line",
			lines: []PricedLine{
				{ProductID: 7, Quantity: 1, UnitPrice: 99.99},
			},
			expected: Totals{
				Subtotal:   99.99,
				Fees:       115.00,
				Tax:        5.00, // 4.9995 rounds half-up
				GrandTotal: 219.99,
			},
		},
		{
			name: "rounding is half-up not truncation",
			lines: []PricedLine{
				{ProductID: 3, Quantity: 3, UnitPrice: 33.33},
			},
			expected: Totals{
				Subtotal:   99.99,
				Fees:       115.00,
				Tax:        5.00,
				GrandTotal: 219.99,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, testPricing())
			assert.InDelta(t, tt.expected.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.expected.Fees, got.Fees, 1e-9)
			assert.InDelta(t, tt.expected.Tax, got.Tax, 1e-9)
			assert.InDelta(t, tt.expected.GrandTotal, got.GrandTotal, 1e-9)
		})
	}
}

func TestComputeTotals_IsPure(t *testing.T) {
	lines := []PricedLine{{ProductID: 1, Quantity: 2, UnitPrice: 100}}
	first := ComputeTotals(lines, testPricing())
	second := ComputeTotals(lines, testPricing())
	assert.Equal(t, first, second)
}
