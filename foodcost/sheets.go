package foodcost

import (
	"encoding/json"
	"net/http"
	"time"

	"mise/db"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sheet is the persisted snapshot of a cost calculation: the rows as entered
// plus the computed totals at save time.
type Sheet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	ProjectID   string             `bson:"projectId,omitempty" json:"projectId,omitempty"`
	RecipeName  string             `bson:"recipeName" json:"recipeName"`
	Settings    Settings           `bson:"settings" json:"settings"`
	Ingredients []Ingredient       `bson:"ingredients" json:"ingredients"`
	Totals      Totals             `bson:"totals" json:"totals"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type sheetBody struct {
	RecipeName  string       `json:"recipeName"`
	ProjectID   string       `json:"projectId"`
	Settings    Settings     `json:"settings"`
	Ingredients []Ingredient `json:"ingredients"`
}

func (b *sheetBody) validate() string {
	if b.RecipeName == "" {
		return "Recipe name is required"
	}
	if !ValidTemplate(string(b.Settings.Template)) {
		return "Invalid template"
	}
	return ""
}

// ComputeSheet is the stateless calculation endpoint: rows + settings in,
// totals out. Nothing is persisted.
func ComputeSheet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body sheetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if !ValidTemplate(string(body.Settings.Template)) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid template")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totals":       Compute(body.Ingredients, body.Settings),
		"capabilities": body.Settings.Template.Capabilities(),
	})
}

func CreateSheet(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body sheetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	sheet := Sheet{
		UserID:      userID,
		ProjectID:   body.ProjectID,
		RecipeName:  body.RecipeName,
		Settings:    body.Settings,
		Ingredients: body.Ingredients,
		Totals:      Compute(body.Ingredients, body.Settings),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := db.FoodCostsCollection.InsertOne(r.Context(), sheet)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}
	sheet.ID = res.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusCreated, sheet)
}

func UpdateSheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid sheet id")
		return
	}

	var body sheetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	updates := bson.M{
		"recipeName":  body.RecipeName,
		"projectId":   body.ProjectID,
		"settings":    body.Settings,
		"ingredients": body.Ingredients,
		"totals":      Compute(body.Ingredients, body.Settings),
		"updatedAt":   time.Now(),
	}
	res, err := db.FoodCostsCollection.UpdateOne(r.Context(),
		bson.M{"_id": id, "userId": userID}, bson.M{"$set": updates})
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Sheet not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

func GetSheets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	ctx := r.Context()

	query := bson.M{"userId": userID}
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		query["projectId"] = projectID
	}

	cursor, err := db.FoodCostsCollection.Find(ctx, query, db.OptionsFindLatest(100))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var sheets []Sheet
	if err := cursor.All(ctx, &sheets); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(sheets) == 0 {
		sheets = []Sheet{}
	}
	utils.RespondWithJSON(w, http.StatusOK, sheets)
}

func GetSheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid sheet id")
		return
	}

	var sheet Sheet
	if err := db.FoodCostsCollection.FindOne(r.Context(), bson.M{"_id": id, "userId": userID}).Decode(&sheet); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Sheet not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sheet)
}

func DeleteSheet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid sheet id")
		return
	}

	res, err := db.FoodCostsCollection.DeleteOne(r.Context(), bson.M{"_id": id, "userId": userID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Sheet not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
