package social

import (
	"encoding/json"
	"net/http"
	"time"

	"mise/db"
	"mise/globals"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	postID := ps.ByName("id")
	ctx := r.Context()

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := db.CommentsCollection.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, []models.Comment{})
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil || comments == nil {
		comments = []models.Comment{}
	}
	utils.RespondWithJSON(w, http.StatusOK, comments)
}

func CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	postID := ps.ByName("id")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Content is required")
		return
	}

	ctx := r.Context()
	chefName, _ := ctx.Value(globals.UsernameKey).(string)
	var prof models.UserProfile
	if db.ProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&prof) == nil && prof.ChefName != "" {
		chefName = prof.ChefName
	}

	comment := models.Comment{
		PostID:    postID,
		UserID:    userID,
		ChefName:  chefName,
		Content:   body.Content,
		CreatedAt: time.Now(),
	}
	res, err := db.CommentsCollection.InsertOne(ctx, comment)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Comment failed")
		return
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	commentID, err := hexToObjectID(ps.ByName("commentId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	res, err := db.CommentsCollection.DeleteOne(r.Context(),
		bson.M{"_id": commentID, "userId": userID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
