package home

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"mise/db"
	"mise/models"
	"mise/utils"
)

// GetHomeContent serves all of the dashboard endpoints under /home/:section.
func GetHomeContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	section := strings.ToLower(ps.ByName("section"))

	var (
		data interface{}
		err  error
	)

	switch section {
	case "featured":
		data, err = getFeaturedRecipes(r.Context())
	case "categories":
		data, err = getRecipeCategories()
	case "seasonal-tips":
		data, err = getSeasonalTips()
	case "trending-pairings":
		data, err = getTrendingPairings()
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Invalid section")
		return
	}

	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": data})
}

// getFeaturedRecipes returns the most viewed published recipes.
func getFeaturedRecipes(ctx context.Context) ([]models.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := db.OptionsFindLatest(6).SetSort(bson.M{"views": -1})
	cursor, err := db.RecipesCollection.Find(ctx, bson.M{"isDraft": false}, opts)
	if err != nil {
		return nil, err
	}
	recipes := []models.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// getRecipeCategories returns the browsing categories of the studio
func getRecipeCategories() ([]string, error) {
	return []string{
		"Pastry",
		"Bread",
		"Mains",
		"Starters",
		"Desserts",
		"Fermentation",
		"Sauces & Stocks",
	}, nil
}

// getSeasonalTips returns short editorial tips rotated by the team
func getSeasonalTips() ([]map[string]interface{}, error) {
	return []map[string]interface{}{
		{"id": 101, "title": "Stone fruit is peaking", "tip": "Roast apricots with thyme before puréeing for coulis."},
		{"id": 102, "title": "Tomato water season", "tip": "Hang overripe tomatoes in cheesecloth overnight for a clear consommé base."},
		{"id": 103, "title": "Preserve now", "tip": "Salt-pack wild garlic capers while the buds are still tight."},
	}, nil
}

// getTrendingPairings returns editor-picked pairings for the dashboard
func getTrendingPairings() ([]map[string]interface{}, error) {
	return []map[string]interface{}{
		{"id": 201, "ingredients": []string{"strawberry", "basil"}, "score": 92},
		{"id": 202, "ingredients": []string{"dark chocolate", "miso"}, "score": 88},
		{"id": 203, "ingredients": []string{"scallop", "brown butter", "caper"}, "score": 95},
	}, nil
}
