package cart

import (
	"testing"

	"github.com/cwmarketing/loyalty-go/pkg/models"
)

func testProduct(price, fullWeight, minWeight float32) models.Product {
	return models.Product{
		ID:        "prod-1",
		ConceptID: "concept-1",
		Code:      "P1",
		Price:     price,
		Weight:    models.Weight{Full: fullWeight, Min: minWeight},
	}
}

func pricedModifier(optionPrices ...float32) models.Modifier {
	m := models.Modifier{ID: "mod-1", Name: "extras"}
	for i, price := range optionPrices {
		m.Options = append(m.Options, models.Option{
			ID:    "opt",
			Name:  string(rune('a' + i)),
			Price: price,
		})
	}
	return m
}

func TestEffectiveWeight(t *testing.T) {
	t.Parallel()

	if got := EffectiveWeight(testProduct(100, 1.0, 0)); got != 1.0 {
		t.Fatalf("expected full weight 1.0, got %v", got)
	}
	if got := EffectiveWeight(testProduct(100, 1.0, 0.5)); got != 0.5 {
		t.Fatalf("expected min weight 0.5, got %v", got)
	}
}

func TestUnitPriceWithModifier(t *testing.T) {
	t.Parallel()

	// Base price 100, full weight 1.0, one option at 10 per unit weight.
	p := testProduct(100, 1.0, 0)
	mods := []models.Modifier{pricedModifier(10)}

	if got := UnitPrice(p, mods); got != 110 {
		t.Fatalf("expected unit price 110, got %v", got)
	}
}

func TestUnitPriceWeightTier(t *testing.T) {
	t.Parallel()

	// Min weight 0.5 scales both the base price and option surcharges.
	p := testProduct(100, 1.0, 0.5)

	if got := UnitPrice(p, nil); got != 50 {
		t.Fatalf("expected tiered unit price 50, got %v", got)
	}

	mods := []models.Modifier{pricedModifier(10)}
	if got := UnitPrice(p, mods); got != 55 {
		t.Fatalf("expected tiered unit price with modifier 55, got %v", got)
	}
}

func TestLineTotal(t *testing.T) {
	t.Parallel()

	line := testProduct(100, 1.0, 0)
	line.OrderModifiers = []models.Modifier{pricedModifier(10)}
	line.Quantity = 2

	if got := LineTotal(line); got != 220 {
		t.Fatalf("expected line total 220, got %v", got)
	}
}

func TestZeroValuedProductPricesToZero(t *testing.T) {
	t.Parallel()

	var p models.Product
	if got := UnitPrice(p, nil); got != 0 {
		t.Fatalf("missing numeric fields should price as zero, got %v", got)
	}
}
