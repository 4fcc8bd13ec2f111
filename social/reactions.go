package social

import (
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

func hexToObjectID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}

func hexToObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// toggleJoin flips a (userId, postId) row in a join collection: delete if
// present, insert otherwise. The existence check keeps the pair unique.
func toggleJoin(w http.ResponseWriter, r *http.Request, ps httprouter.Params, coll *mongo.Collection, name string) {
	userID := utils.GetUserIDFromRequest(r)
	postID := ps.ByName("id")
	if _, err := hexToObjectID(postID); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	ctx := r.Context()
	filter := bson.M{"postId": postID, "userId": userID}

	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, name+" failed")
		return
	}
	if count > 0 {
		if _, err := coll.DeleteMany(ctx, filter); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, name+" failed")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"active": false})
		return
	}

	if _, err := coll.InsertOne(ctx, models.Like{PostID: postID, UserID: userID, CreatedAt: time.Now()}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, name+" failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"active": true})
}

func ToggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleJoin(w, r, ps, db.LikesCollection, "Like")
}

func ToggleSave(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	toggleJoin(w, r, ps, db.SavesCollection, "Save")
}
