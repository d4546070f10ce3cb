// services/pricing.go
package services

import "salonbase-backend/models"

// ProductPrices resolves a product ID to its current live row. Pack prices
// are always recomputed from current product prices, never cached or frozen.
type ProductPrices map[uint]models.Product

// CalculatePackPrices computes a pack's undiscounted sum and the price
// actually charged.
//
// calculated: sum of current product price * quantity over every line whose
// product still resolves; a missing product contributes nothing rather than
// failing the computation.
//
// effective: the custom price when set, otherwise the calculated sum, less
// the pack's percentage discount. The discount amount truncates toward zero
// so a discount never rounds up, and the result is clamped at zero.
func CalculatePackPrices(pack models.Pack, products ProductPrices) (calculated, effective int) {
	for _, pp := range pack.PackProducts {
		if product, ok := products[pp.ProductID]; ok {
			calculated += product.Price * pp.Quantity
		}
	}

	effective = calculated
	if pack.CustomPrice != nil {
		effective = *pack.CustomPrice
	}

	if pack.DiscountPercentage > 0 {
		discount := int(float64(effective) * pack.DiscountPercentage / 100)
		effective -= discount
	}
	if effective < 0 {
		effective = 0
	}

	return calculated, effective
}

// PubliclyVisible reports whether a pack may appear in the public, salon
// scoped listing: every constituent product must resolve to a currently
// active, non-deleted product and at least two such products must remain.
// Packs that degraded below the minimum stay retrievable for the salon's
// own views but are silently excluded here.
func PubliclyVisible(pack models.Pack, products ProductPrices) bool {
	if pack.State() != models.StateActive {
		return false
	}
	live := 0
	for _, pp := range pack.PackProducts {
		product, ok := products[pp.ProductID]
		if !ok || product.State() != models.StateActive {
			return false
		}
		live++
	}
	return live >= 2
}
