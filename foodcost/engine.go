package foodcost

// The four sheet templates share one aggregation; a capability set decides
// which per-row inputs are live and which derived fields get surfaced.

type Template string

const (
	TemplateBasic       Template = "BASIC"
	TemplateRestaurant  Template = "RESTAURANT"
	TemplateNutritional Template = "NUTRITIONAL"
	TemplateEconomic    Template = "ECONOMIC"
)

func ValidTemplate(t string) bool {
	switch Template(t) {
	case TemplateBasic, TemplateRestaurant, TemplateNutritional, TemplateEconomic:
		return true
	}
	return false
}

// Capabilities lists the optional row inputs a template activates.
type Capabilities struct {
	HandlingLoss bool `json:"handlingLoss"`
	Nutrition    bool `json:"nutrition"`
	BulkDiscount bool `json:"bulkDiscount"`
	Suppliers    bool `json:"suppliers"`
}

func (t Template) Capabilities() Capabilities {
	switch t {
	case TemplateRestaurant:
		return Capabilities{HandlingLoss: true}
	case TemplateNutritional:
		return Capabilities{HandlingLoss: true, Nutrition: true}
	case TemplateEconomic:
		return Capabilities{BulkDiscount: true, Suppliers: true}
	default:
		return Capabilities{}
	}
}

// Ingredient is a session-local sheet row. Rows are only persisted as part of
// a saved sheet snapshot, never on their own.
type Ingredient struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  float64 `bson:"quantity" json:"quantity"`
	Unit      string  `bson:"unit" json:"unit"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Currency  string  `bson:"currency,omitempty" json:"currency,omitempty"`

	// Restaurant / nutritional template inputs. Percentages are intentionally
	// unclamped: values outside [0,100] flow through the arithmetic unchanged.
	HandlingLoss float64 `bson:"handlingLoss,omitempty" json:"handlingLoss,omitempty"`
	Protein      float64 `bson:"protein,omitempty" json:"protein,omitempty"`
	Carbs        float64 `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Fats         float64 `bson:"fats,omitempty" json:"fats,omitempty"`
	Calories     float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Fiber        float64 `bson:"fiber,omitempty" json:"fiber,omitempty"`
	Allergens    string  `bson:"allergens,omitempty" json:"allergens,omitempty"`

	// Economic template inputs.
	BulkDiscount     float64 `bson:"bulkDiscount,omitempty" json:"bulkDiscount,omitempty"`
	CurrentSupplier  string  `bson:"currentSupplier,omitempty" json:"currentSupplier,omitempty"`
	CheapestSupplier string  `bson:"cheapestSupplier,omitempty" json:"cheapestSupplier,omitempty"`
	CheapestPrice    float64 `bson:"cheapestPrice,omitempty" json:"cheapestPrice,omitempty"`
}

// Settings are the scalar knobs above the row table.
type Settings struct {
	Template        Template `bson:"template" json:"template"`
	Servings        int      `bson:"servings" json:"servings"`
	CookingLoss     float64  `bson:"cookingLoss" json:"cookingLoss"`
	TargetMargin    float64  `bson:"targetMargin" json:"targetMargin"`
	PricingStrategy string   `bson:"pricingStrategy" json:"pricingStrategy"` // cost-margin | multiplier
	Classification  string   `bson:"classification,omitempty" json:"classification,omitempty"`
}

type Row struct {
	Ingredient `bson:",inline"`
	GrossCost  float64 `bson:"grossCost" json:"grossCost"`
	NetWeight  float64 `bson:"netWeight" json:"netWeight"`
	FinalCost  float64 `bson:"finalCost" json:"finalCost"`
	Savings    float64 `bson:"savings" json:"savings"`
	CostShare  float64 `bson:"costShare" json:"costShare"` // % of total cost
}

type Nutrients struct {
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
	Calories float64 `bson:"calories" json:"calories"`
	Fiber    float64 `bson:"fiber" json:"fiber"`
}

type Totals struct {
	Rows             []Row     `bson:"rows" json:"rows"`
	TotalCost        float64   `bson:"totalCost" json:"totalCost"`
	TotalGrossWeight float64   `bson:"totalGrossWeight" json:"totalGrossWeight"`
	TotalNetWeight   float64   `bson:"totalNetWeight" json:"totalNetWeight"`
	CookedNetWeight  float64   `bson:"cookedNetWeight" json:"cookedNetWeight"`
	CostPerServing   float64   `bson:"costPerServing" json:"costPerServing"`
	SuggestedPrice   float64   `bson:"suggestedPrice" json:"suggestedPrice"`
	Nutrition        Nutrients `bson:"nutrition" json:"nutrition"`
	PerServing       Nutrients `bson:"perServing" json:"perServing"`

	// MarginUnpriceable is set instead of dividing by a zero or negative
	// denominator when targetMargin >= 100 under the cost-margin strategy.
	MarginUnpriceable bool `bson:"marginUnpriceable" json:"marginUnpriceable"`
}

// nutrientScale reproduces the sheet's per-100 convention: quantities in kg
// or L count as-is, anything else is read as grams/milliliters. The x10
// factor assumes nutrient fields are per 100 units; for count units ("unit",
// "doz") this mis-scales, which is the documented behavior of the sheet, so
// it is kept rather than corrected here.
func nutrientScale(qty float64, unit string) float64 {
	switch unit {
	case "kg", "L", "l":
		return qty * 10
	default:
		return qty / 1000 * 10
	}
}

// Compute derives all row and sheet aggregates from the ingredient list and
// settings. Pure; recomputed wholesale on every edit.
func Compute(ingredients []Ingredient, s Settings) Totals {
	t := Totals{Rows: make([]Row, 0, len(ingredients))}
	economic := s.Template == TemplateEconomic

	for _, ing := range ingredients {
		grossCost := ing.Quantity * ing.UnitPrice
		netWeight := ing.Quantity * (1 - ing.HandlingLoss/100)

		finalCost := grossCost
		if economic {
			finalCost = grossCost * (1 - ing.BulkDiscount/100)
		}

		cheapest := ing.CheapestPrice
		if cheapest == 0 {
			cheapest = ing.UnitPrice
		}
		savings := (ing.UnitPrice - cheapest) * ing.Quantity

		t.TotalCost += finalCost
		t.TotalGrossWeight += ing.Quantity
		t.TotalNetWeight += netWeight

		scale := nutrientScale(ing.Quantity, ing.Unit)
		t.Nutrition.Protein += ing.Protein * scale
		t.Nutrition.Carbs += ing.Carbs * scale
		t.Nutrition.Fats += ing.Fats * scale
		t.Nutrition.Calories += ing.Calories * scale
		t.Nutrition.Fiber += ing.Fiber * scale

		t.Rows = append(t.Rows, Row{
			Ingredient: ing,
			GrossCost:  grossCost,
			NetWeight:  netWeight,
			FinalCost:  finalCost,
			Savings:    savings,
		})
	}

	t.CookedNetWeight = t.TotalNetWeight * (1 - s.CookingLoss/100)

	// Servings of zero clamp the denominator to one instead of dividing by it.
	servings := float64(s.Servings)
	if s.Servings == 0 {
		servings = 1
	}
	t.CostPerServing = t.TotalCost / servings
	t.PerServing = Nutrients{
		Protein:  t.Nutrition.Protein / servings,
		Carbs:    t.Nutrition.Carbs / servings,
		Fats:     t.Nutrition.Fats / servings,
		Calories: t.Nutrition.Calories / servings,
		Fiber:    t.Nutrition.Fiber / servings,
	}

	if s.PricingStrategy == "cost-margin" {
		if s.TargetMargin >= 100 {
			t.MarginUnpriceable = true
		} else {
			t.SuggestedPrice = t.CostPerServing / (1 - s.TargetMargin/100)
		}
	} else {
		// Placeholder multiplier for strategies other than cost-plus-margin.
		t.SuggestedPrice = t.CostPerServing * 3
	}

	costDenom := t.TotalCost
	if costDenom == 0 {
		costDenom = 1
	}
	for i := range t.Rows {
		t.Rows[i].CostShare = t.Rows[i].FinalCost / costDenom * 100
	}

	return t
}
