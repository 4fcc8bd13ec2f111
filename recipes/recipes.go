package recipes

import (
	"encoding/json"
	"net/http"
	"time"

	"mise/config"
	"mise/db"
	"mise/models"
	"mise/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetRecipes lists the caller's recipes with search, sort and pagination.
func GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	query := bson.M{}

	if userID := utils.GetUserIDFromContext(ctx); userID != "" {
		query["userId"] = userID
	} else {
		// Anonymous browsing only sees shared, non-draft recipes.
		query["isDraft"] = false
	}

	search := r.URL.Query().Get("search")
	ingredient := r.URL.Query().Get("ingredient")
	sortParam := r.URL.Query().Get("sort")
	offset, limit := utils.ParsePagination(r.URL.Query().Get("offset"), r.URL.Query().Get("limit"))

	if search != "" {
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if ingredient != "" {
		query["subdivisions.items.name"] = bson.M{"$regex": ingredient, "$options": "i"}
	}

	sort := bson.D{{Key: "updatedAt", Value: -1}}
	switch sortParam {
	case "oldest":
		sort = bson.D{{Key: "createdAt", Value: 1}}
	case "popular":
		sort = bson.D{{Key: "views", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := db.RecipesCollection.Find(ctx, query, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err = cursor.All(ctx, &recipes); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(recipes) == 0 {
		recipes = []models.Recipe{}
	}

	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

func GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid recipe id", http.StatusBadRequest)
		return
	}
	var recipe models.Recipe
	if err := db.RecipesCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&recipe); err != nil {
		http.Error(w, "Recipe not found", http.StatusNotFound)
		return
	}

	// Drafts are owner-only.
	if recipe.IsDraft && recipe.UserID != utils.GetUserIDFromContext(r.Context()) {
		http.Error(w, "Recipe not found", http.StatusNotFound)
		return
	}

	// Best-effort view counter.
	db.RecipesCollection.UpdateOne(r.Context(), bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})

	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

type recipeBody struct {
	Title        string                         `json:"title"`
	Description  string                         `json:"description"`
	Difficulty   string                         `json:"difficulty"`
	PrepTime     int                            `json:"prepTime"`
	PrepTimeUnit string                         `json:"prepTimeUnit"`
	Servings     int                            `json:"servings"`
	Subdivisions []models.IngredientSubdivision `json:"subdivisions"`
	PrepSteps    []string                       `json:"prepSteps"`
	Tags         []string                       `json:"tags"`
	ChefNotes    []models.ChefNote              `json:"chefNotes"`
	Attachments  []models.Attachment            `json:"attachments"`
	ProjectID    string                         `json:"projectId"`
	IsDraft      bool                           `json:"isDraft"`
}

func (b *recipeBody) validate() string {
	if b.Title == "" {
		return "Title is required"
	}
	switch b.Difficulty {
	case "Beginner", "Intermediate", "Advanced":
	default:
		return "Invalid difficulty"
	}
	if b.PrepTimeUnit != "mins" && b.PrepTimeUnit != "hours" {
		return "Invalid prep time unit"
	}
	for _, n := range b.ChefNotes {
		if !models.ValidChefNoteType(string(n.Type)) {
			return "Invalid chef note type: " + string(n.Type)
		}
	}
	return ""
}

func normalize(b *recipeBody) {
	if b.Subdivisions == nil {
		b.Subdivisions = []models.IngredientSubdivision{}
	}
	for i := range b.Subdivisions {
		if b.Subdivisions[i].ID == "" {
			b.Subdivisions[i].ID = uuid.New().String()
		}
		for j := range b.Subdivisions[i].Items {
			if b.Subdivisions[i].Items[j].ID == "" {
				b.Subdivisions[i].Items[j].ID = uuid.New().String()
			}
		}
	}
	for i := range b.ChefNotes {
		if b.ChefNotes[i].ID == "" {
			b.ChefNotes[i].ID = uuid.New().String()
		}
	}
	for i := range b.Attachments {
		if b.Attachments[i].ID == "" {
			b.Attachments[i].ID = uuid.New().String()
		}
	}
	if b.PrepSteps == nil {
		b.PrepSteps = []string{}
	}
	if b.ChefNotes == nil {
		b.ChefNotes = []models.ChefNote{}
	}
	if b.Attachments == nil {
		b.Attachments = []models.Attachment{}
	}
}

func CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body recipeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	normalize(&body)

	now := time.Now().Unix()
	recipe := models.Recipe{
		UserID:       userID,
		ProjectID:    body.ProjectID,
		Title:        body.Title,
		Description:  body.Description,
		Difficulty:   body.Difficulty,
		PrepTime:     body.PrepTime,
		PrepTimeUnit: body.PrepTimeUnit,
		Servings:     body.Servings,
		Subdivisions: body.Subdivisions,
		PrepSteps:    body.PrepSteps,
		Images:       []string{},
		Tags:         body.Tags,
		ChefNotes:    body.ChefNotes,
		Attachments:  body.Attachments,
		IsDraft:      body.IsDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := db.RecipesCollection.InsertOne(r.Context(), recipe)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}
	recipe.ID = res.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusCreated, recipe)
}

func UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	var body recipeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	normalize(&body)

	updates := bson.M{
		"title":        body.Title,
		"description":  body.Description,
		"difficulty":   body.Difficulty,
		"prepTime":     body.PrepTime,
		"prepTimeUnit": body.PrepTimeUnit,
		"servings":     body.Servings,
		"subdivisions": body.Subdivisions,
		"prepSteps":    body.PrepSteps,
		"tags":         body.Tags,
		"chefNotes":    body.ChefNotes,
		"attachments":  body.Attachments,
		"projectId":    body.ProjectID,
		"isDraft":      body.IsDraft,
		"updatedAt":    time.Now().Unix(),
	}

	res, err := db.RecipesCollection.UpdateOne(r.Context(),
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": updates})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Update failed")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

func DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	res, err := db.RecipesCollection.DeleteOne(r.Context(), bson.M{"_id": id, "userId": userID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}

	// Shared posts for the recipe go with it. Independent call, no rollback.
	db.PostsCollection.DeleteMany(r.Context(), bson.M{"recipeId": id.Hex()})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// UploadImages attaches uploaded images (plus thumbnails) to a recipe.
func UploadImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Config error")
		return
	}

	var urls []string
	for _, fileHeader := range r.MultipartForm.File["images"] {
		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error reading file")
			return
		}
		url, _, err := utils.SaveImage(file, fileHeader, cfg.UploadDir+"/recipes", "/static/uploads/recipes")
		file.Close()
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving file")
			return
		}
		urls = append(urls, url)
	}

	res, err := db.RecipesCollection.UpdateOne(r.Context(),
		bson.M{"_id": id, "userId": userID},
		bson.M{"$push": bson.M{"images": bson.M{"$each": urls}}, "$set": bson.M{"updatedAt": time.Now().Unix()}})
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"images": urls})
}

// GetRecipeTags aggregates the distinct tag vocabulary across recipes.
func GetRecipeTags(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{
			"_id":  nil,
			"tags": bson.M{"$addToSet": "$tags"},
		}}},
	}

	cursor, err := db.RecipesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var result []struct {
		Tags []string `bson:"tags"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result) > 0 {
		utils.RespondWithJSON(w, http.StatusOK, result[0].Tags)
	} else {
		utils.RespondWithJSON(w, http.StatusOK, []string{})
	}
}
