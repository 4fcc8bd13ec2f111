package foodcost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBasicSheet(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "flour", Quantity: 2, Unit: "kg", UnitPrice: 5.0},
		{Name: "butter", Quantity: 1, Unit: "kg", UnitPrice: 10.0},
	}
	totals := Compute(ingredients, Settings{Template: TemplateBasic, Servings: 4})

	assert.InDelta(t, 20.0, totals.TotalCost, 1e-9)
	assert.InDelta(t, 5.0, totals.CostPerServing, 1e-9)
	assert.InDelta(t, 3.0, totals.TotalGrossWeight, 1e-9)
	require.Len(t, totals.Rows, 2)
	assert.InDelta(t, 10.0, totals.Rows[0].GrossCost, 1e-9)
	assert.InDelta(t, 10.0, totals.Rows[1].GrossCost, 1e-9)
}

func TestComputeHandlingLoss(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "leeks", Quantity: 4, Unit: "kg", UnitPrice: 2.0, HandlingLoss: 25},
	}
	totals := Compute(ingredients, Settings{Template: TemplateRestaurant, Servings: 1})

	require.Len(t, totals.Rows, 1)
	assert.InDelta(t, 3.0, totals.Rows[0].NetWeight, 1e-9)
	assert.InDelta(t, 3.0, totals.TotalNetWeight, 1e-9)
	// handling loss changes weight, never cost
	assert.InDelta(t, 8.0, totals.TotalCost, 1e-9)
}

func TestComputeCookingLoss(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "brisket", Quantity: 2, Unit: "kg", UnitPrice: 15.0, HandlingLoss: 10},
	}
	totals := Compute(ingredients, Settings{Template: TemplateRestaurant, Servings: 2, CookingLoss: 50})

	assert.InDelta(t, 1.8, totals.TotalNetWeight, 1e-9)
	assert.InDelta(t, 0.9, totals.CookedNetWeight, 1e-9)
}

func TestBulkDiscountOnlyAppliesOnEconomic(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "rice", Quantity: 10, Unit: "kg", UnitPrice: 2.0, BulkDiscount: 20},
	}

	basic := Compute(ingredients, Settings{Template: TemplateBasic, Servings: 1})
	assert.InDelta(t, 20.0, basic.TotalCost, 1e-9)

	economic := Compute(ingredients, Settings{Template: TemplateEconomic, Servings: 1})
	assert.InDelta(t, 16.0, economic.TotalCost, 1e-9)
	assert.InDelta(t, 20.0, economic.Rows[0].GrossCost, 1e-9)
	assert.InDelta(t, 16.0, economic.Rows[0].FinalCost, 1e-9)
}

func TestSavingsDefaultsToUnitPrice(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "saffron", Quantity: 0.01, Unit: "kg", UnitPrice: 4000},
		{Name: "vanilla", Quantity: 0.5, Unit: "kg", UnitPrice: 420, CheapestPrice: 400},
	}
	totals := Compute(ingredients, Settings{Template: TemplateEconomic, Servings: 1})

	require.Len(t, totals.Rows, 2)
	// no cheapest supplier recorded means no savings, not a full refund
	assert.InDelta(t, 0.0, totals.Rows[0].Savings, 1e-9)
	assert.InDelta(t, 10.0, totals.Rows[1].Savings, 1e-9)
}

func TestZeroServingsClampsDenominator(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "stock", Quantity: 1, Unit: "L", UnitPrice: 6.0},
	}
	totals := Compute(ingredients, Settings{Template: TemplateBasic, Servings: 0})

	assert.InDelta(t, 6.0, totals.CostPerServing, 1e-9)
}

func TestPricingStrategies(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "duck", Quantity: 1, Unit: "kg", UnitPrice: 12.0},
	}

	costMargin := Compute(ingredients, Settings{
		Template: TemplateBasic, Servings: 2,
		PricingStrategy: "cost-margin", TargetMargin: 70,
	})
	assert.InDelta(t, 20.0, costMargin.SuggestedPrice, 1e-9)
	assert.False(t, costMargin.MarginUnpriceable)

	multiplier := Compute(ingredients, Settings{
		Template: TemplateBasic, Servings: 2,
		PricingStrategy: "multiplier",
	})
	assert.InDelta(t, 18.0, multiplier.SuggestedPrice, 1e-9)
}

func TestFullMarginIsUnpriceable(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "duck", Quantity: 1, Unit: "kg", UnitPrice: 12.0},
	}
	totals := Compute(ingredients, Settings{
		Template: TemplateBasic, Servings: 1,
		PricingStrategy: "cost-margin", TargetMargin: 100,
	})

	assert.True(t, totals.MarginUnpriceable)
	assert.Zero(t, totals.SuggestedPrice)
}

func TestCostSharesSumToHundred(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "a", Quantity: 1, Unit: "kg", UnitPrice: 1},
		{Name: "b", Quantity: 1, Unit: "kg", UnitPrice: 3},
		{Name: "c", Quantity: 1, Unit: "kg", UnitPrice: 6},
	}
	totals := Compute(ingredients, Settings{Template: TemplateBasic, Servings: 1})

	sum := 0.0
	for _, row := range totals.Rows {
		sum += row.CostShare
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.InDelta(t, 60.0, totals.Rows[2].CostShare, 1e-9)
}

func TestZeroCostSheetHasNoShares(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "water", Quantity: 1, Unit: "L", UnitPrice: 0},
	}
	totals := Compute(ingredients, Settings{Template: TemplateBasic, Servings: 1})

	assert.Zero(t, totals.TotalCost)
	assert.Zero(t, totals.Rows[0].CostShare)
}

func TestNutrientScaling(t *testing.T) {
	// per-100 fields: kg rows scale by qty*10, gram rows by qty/1000*10
	ingredients := []Ingredient{
		{Name: "chicken", Quantity: 2, Unit: "kg", Protein: 27},
		{Name: "lentils", Quantity: 500, Unit: "g", Protein: 9},
	}
	totals := Compute(ingredients, Settings{Template: TemplateNutritional, Servings: 2})

	assert.InDelta(t, 27*20+9*5, totals.Nutrition.Protein, 1e-9)
	assert.InDelta(t, totals.Nutrition.Protein/2, totals.PerServing.Protein, 1e-9)
}

func TestUnclampedPercentagesFlowThrough(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "odd", Quantity: 1, Unit: "kg", UnitPrice: 10, HandlingLoss: 150},
	}
	totals := Compute(ingredients, Settings{Template: TemplateRestaurant, Servings: 1})

	// a loss above 100% yields a negative net weight, intentionally unchecked
	assert.InDelta(t, -0.5, totals.Rows[0].NetWeight, 1e-9)
}

func TestTemplateCapabilities(t *testing.T) {
	assert.Equal(t, Capabilities{}, TemplateBasic.Capabilities())
	assert.Equal(t, Capabilities{HandlingLoss: true}, TemplateRestaurant.Capabilities())
	assert.Equal(t, Capabilities{HandlingLoss: true, Nutrition: true}, TemplateNutritional.Capabilities())
	assert.Equal(t, Capabilities{BulkDiscount: true, Suppliers: true}, TemplateEconomic.Capabilities())
}

func TestValidTemplate(t *testing.T) {
	assert.True(t, ValidTemplate("BASIC"))
	assert.True(t, ValidTemplate("ECONOMIC"))
	assert.False(t, ValidTemplate("basic"))
	assert.False(t, ValidTemplate(""))
}
