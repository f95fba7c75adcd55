package cart

import "github.com/cwmarketing/loyalty-go/pkg/models"

// Arithmetic is float32 throughout to match the backend's pricing.
// Rounding is a display-layer concern (pkg/money).

// EffectiveWeight returns the weight a product is charged by: the
// minimum order weight when one is set, otherwise the full weight.
func EffectiveWeight(p models.Product) float32 {
	if p.Weight.Min > 0 {
		return p.Weight.Min
	}
	return p.Weight.Full
}

// BasePrice returns the unit price before modifiers. Products sold by
// minimum-weight tiers are charged min weight times the list price.
func BasePrice(p models.Product) float32 {
	if p.Weight.Min > 0 {
		return p.Weight.Min * p.Price
	}
	return p.Price
}

// UnitPrice returns the price of one unit of the line: the base price
// plus every selected option's surcharge scaled by effective weight.
func UnitPrice(p models.Product, modifiers []models.Modifier) float32 {
	weight := EffectiveWeight(p)
	var surcharge float32
	for _, modifier := range modifiers {
		for _, option := range modifier.Options {
			surcharge += option.Price * weight
		}
	}
	return BasePrice(p) + surcharge
}

// LineTotal returns the line's contribution to the cart total.
func LineTotal(p models.Product) float32 {
	return UnitPrice(p, p.OrderModifiers) * p.Quantity
}
