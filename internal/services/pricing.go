package services

import "math"

// PricingConfig carries the fixed platform fee, delivery fee and tax rate
// applied to every checkout.
type PricingConfig struct {
	PlatformFee float64
	DeliveryFee float64
	TaxRate     float64
}

// PricedLine is a cart line with its authoritative unit price resolved by
// the caller. ComputeTotals does not care which price was supplied; checkout
// passes the live catalog price, not the cart's display price.
type PricedLine struct {
	ProductID uint64
	Quantity  int
	UnitPrice float64
}

type Totals struct {
	Subtotal   float64
	Fees       float64
	Tax        float64
	GrandTotal float64
}

// ComputeTotals is pure. An empty line set yields all-zero totals, fees
// included. Amounts are rounded half-up to two decimals.
func ComputeTotals(lines []PricedLine, cfg PricingConfig) Totals {
	if len(lines) == 0 {
		return Totals{}
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += float64(l.Quantity) * l.UnitPrice
	}

	fees := cfg.PlatformFee + cfg.DeliveryFee
	tax := subtotal * cfg.TaxRate

	return Totals{
		Subtotal:   round2(subtotal),
		Fees:       round2(fees),
		Tax:        round2(tax),
		GrandTotal: round2(subtotal + fees + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
