package profile

import (
	"net/http"

	"mise/db"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToggleFollow adds targetID to the caller's follows list. $addToSet keeps the
// (follower, following) pair unique even on a double click.
func ToggleFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	targetID := ps.ByName("id")
	if targetID == "" || targetID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid target")
		return
	}

	ctx := r.Context()
	opts := options.Update().SetUpsert(true)
	if _, err := db.FollowsCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"follows": targetID}}, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Follow failed")
		return
	}
	if _, err := db.FollowsCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$addToSet": bson.M{"followers": userID}}, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Follow failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"following": true})
}

func ToggleUnFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	targetID := ps.ByName("id")

	ctx := r.Context()
	if _, err := db.FollowsCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"follows": targetID}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unfollow failed")
		return
	}
	if _, err := db.FollowsCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$pull": bson.M{"followers": userID}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Unfollow failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"following": false})
}

func DoesFollow(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	targetID := ps.ByName("id")

	count, err := db.FollowsCollection.CountDocuments(r.Context(),
		bson.M{"userid": userID, "follows": targetID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"following": count > 0})
}

func fetchProfiles(r *http.Request, userIDs []string) []models.UserSuggest {
	// Feed-style read: degrade to empty on failure.
	out := []models.UserSuggest{}
	if len(userIDs) == 0 {
		return out
	}
	cursor, err := db.ProfilesCollection.Find(r.Context(),
		bson.M{"userid": bson.M{"$in": userIDs}},
		options.Find().SetProjection(bson.M{"userid": 1, "username": 1, "chefName": 1, "bio": 1}))
	if err != nil {
		return out
	}
	defer cursor.Close(r.Context())
	if err := cursor.All(r.Context(), &out); err != nil {
		return []models.UserSuggest{}
	}
	return out
}

func GetFollowers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var followData models.UserFollow
	err := db.FollowsCollection.FindOne(r.Context(), bson.M{"userid": ps.ByName("id")}).Decode(&followData)
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, fetchProfiles(r, followData.Followers))
}

func GetFollowing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var followData models.UserFollow
	err := db.FollowsCollection.FindOne(r.Context(), bson.M{"userid": ps.ByName("id")}).Decode(&followData)
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, fetchProfiles(r, followData.Follows))
}
