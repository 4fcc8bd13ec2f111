package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"mise/ai"
	"mise/foodcost"
	"mise/utils"
)

// OptimizationSuggestion is one model-proposed change to a cost sheet.
type OptimizationSuggestion struct {
	Title          string `json:"title"`
	Current        string `json:"current"`
	Recommendation string `json:"recommendation"`
	Impact         string `json:"impact"`
}

const optimizeSystemPrompt = "You are a culinary consultant. Always answer with a JSON array of objects with title, current, recommendation and impact, no prose around it."

// Optimize asks the model for three sheet improvements. kind selects the
// nutritional or economic angle; any failure yields an empty list, not an
// error, so the sheet stays usable.
func Optimize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Kind        string                `json:"kind"`
		Ingredients []foodcost.Ingredient `json:"ingredients"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Ingredients) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Ingredients are required")
		return
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		req.Kind = kind
	}

	suggestions := []OptimizationSuggestion{}
	client, err := ai.Default()
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "suggestions": suggestions})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	if err := client.CompleteJSON(ctx, optimizeSystemPrompt, optimizePrompt(req.Kind, req.Ingredients), &suggestions); err != nil {
		suggestions = []OptimizationSuggestion{}
	}
	if suggestions == nil {
		suggestions = []OptimizationSuggestion{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "suggestions": suggestions})
}

func optimizePrompt(kind string, ingredients []foodcost.Ingredient) string {
	type row struct {
		Name  string  `json:"name"`
		Qty   float64 `json:"qty"`
		Unit  string  `json:"unit"`
		Price float64 `json:"price,omitempty"`
	}
	rows := make([]row, 0, len(ingredients))
	economic := kind == "economic"
	for _, ing := range ingredients {
		r := row{Name: ing.Name, Qty: ing.Quantity, Unit: ing.Unit}
		if economic {
			r.Price = ing.UnitPrice
		}
		rows = append(rows, r)
	}
	listJSON, _ := json.Marshal(rows)

	if economic {
		return fmt.Sprintf(`Review this recipe ingredient list for cost optimization:
%s
Provide 3 suggestions to reduce total cost (bulk buy, supplier switch, or ingredient swap).
Return a JSON array of objects with title, current, recommendation, impact.`, listJSON)
	}
	return fmt.Sprintf(`Review this recipe ingredient list for nutritional optimization:
%s
Provide 3 suggestions to improve nutrition (higher protein, lower fat, or more fiber).
Return a JSON array of objects with title, current, recommendation, impact.`, listJSON)
}
