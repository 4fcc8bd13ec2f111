package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mise/ai"
	"mise/db"
	"mise/models"
	"mise/utils"
)

const pairingSystemPrompt = "You are a culinary science expert. Always answer with a single JSON object matching the requested fields, no prose around it."

func buildPrompt(ingredients []string, language string, deep bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the culinary pairing of: %s.\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "The entire response must be in %s.\n", language)
	b.WriteString("Return a JSON object with:\n")
	b.WriteString("- compatibilityScore (number 0-100)\n")
	b.WriteString("- flavorProfile (array of strings)\n")
	b.WriteString("- detailedExplanation (around 100 words)\n")
	if deep {
		b.WriteString("- complexity (string: e.g. Low, Medium, High)\n")
		b.WriteString("- intensity (string: e.g. Subtle, Balanced, Pungent)\n")
		fmt.Fprintf(&b, "- recommendedRatio (exact numerical percentage for EVERY ingredient, e.g. \"%s 60%% / %s 40%%\")\n",
			ingredients[0], ingredients[len(ingredients)-1])
		b.WriteString("- sources (array of culinary or scientific references)\n")
		b.WriteString("- physicochemicalInfo (scientific explanation of the pairing)\n")
		b.WriteString("- complementaryIngredients (array of strings)\n")
		b.WriteString("- tips (array of culinary tips)\n")
		b.WriteString("- thingsToAvoid (array of common mistakes or clashing ingredients)\n")
		b.WriteString("- historicalContext (historical or cultural relevance if it exists)\n")
	}
	b.WriteString("- suggestedDishes (array of objects with 'name' and 'difficulty')\n")
	return b.String()
}

// AnalyzePairing runs the model over an ingredient list and persists the
// returned object verbatim, keyed by viewer. The deep flag widens the schema.
func AnalyzePairing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Ingredients []string `json:"ingredients"`
		Language    string   `json:"language"`
		Deep        bool     `json:"deep"`
		ProjectID   string   `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Ingredients) < 2 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least two ingredients are required")
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}

	client, err := ai.Default()
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 90*time.Second)
	defer cancel()

	var analysis map[string]interface{}
	if err := client.CompleteJSON(ctx, pairingSystemPrompt, buildPrompt(req.Ingredients, req.Language, req.Deep), &analysis); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Pairing analysis failed")
		return
	}

	score, _ := analysis["compatibilityScore"].(float64)
	saved := models.PairingAnalysis{
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Ingredients: req.Ingredients,
		Score:       score,
		Analysis:    analysis,
		CreatedAt:   time.Now(),
	}
	res, err := db.PairingsCollection.InsertOne(ctx, saved)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save analysis")
		return
	}
	saved.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "pairing": saved})
}

// GetPairings lists the viewer's saved analyses, newest first.
func GetPairings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID}
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		filter["projectId"] = projectID
	}

	pairings := []models.PairingAnalysis{}
	cursor, err := db.PairingsCollection.Find(ctx, filter, db.OptionsFindLatest(50))
	if err == nil {
		_ = cursor.All(ctx, &pairings)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "pairings": pairings})
}

func GetPairing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pairing ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var pairing models.PairingAnalysis
	if err := db.PairingsCollection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&pairing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pairing not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "pairing": pairing})
}

func DeletePairing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pairing ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.PairingsCollection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Pairing not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
