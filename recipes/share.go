package recipes

import (
	"encoding/json"
	"net/http"
	"time"

	"mise/db"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ShareRecipe publishes a recipe to the social feed. Re-sharing replaces the
// existing post: delete then insert, two independent calls with no rollback
// if the second fails.
func ShareRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	ctx := r.Context()
	var recipe models.Recipe
	if err := db.RecipesCollection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&recipe); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if recipe.IsDraft {
		utils.RespondWithError(w, http.StatusBadRequest, "Drafts cannot be shared")
		return
	}

	var body struct {
		Caption string `json:"caption"`
	}
	json.NewDecoder(r.Body).Decode(&body)

	db.PostsCollection.DeleteMany(ctx, bson.M{"recipeId": id.Hex(), "userId": userID})

	post := models.SocialPost{
		UserID:    userID,
		RecipeID:  id.Hex(),
		Caption:   body.Caption,
		CreatedAt: time.Now(),
	}
	res, err := db.PostsCollection.InsertOne(ctx, post)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Share failed")
		return
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusOK, post)
}

func UnshareRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	_, err = db.PostsCollection.DeleteMany(r.Context(), bson.M{"recipeId": id.Hex(), "userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unshare failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "unshared"})
}

// SharedStatus reports whether the recipe currently has a feed post.
func SharedStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id := ps.ByName("id")

	var post models.SocialPost
	err := db.PostsCollection.FindOne(r.Context(), bson.M{"recipeId": id, "userId": userID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"shared": false})
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"shared": true, "postId": post.ID.Hex()})
}
