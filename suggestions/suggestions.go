package suggestions

import (
	"net/http"
	"strconv"

	"mise/db"
	"mise/globals"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestChefs returns paginated profiles the caller does not follow yet.
func SuggestChefs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	skip := (page - 1) * limit

	ctx := r.Context()
	var followData models.UserFollow
	err = db.FollowsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&followData)
	if err != nil && err != mongo.ErrNoDocuments {
		http.Error(w, "Failed to fetch follow data", http.StatusInternalServerError)
		return
	}

	excluded := append(followData.Follows, userID)

	filter := bson.M{"userid": bson.M{"$nin": excluded}}
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"userid": 1, "username": 1, "chefName": 1, "bio": 1})

	cursor, err := db.ProfilesCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, "Failed to fetch suggestions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var suggested []models.UserSuggest
	for cursor.Next(ctx) {
		var s models.UserSuggest
		if err := cursor.Decode(&s); err == nil {
			s.IsFollowing = false
			suggested = append(suggested, s)
		}
	}
	if len(suggested) == 0 {
		suggested = []models.UserSuggest{}
	}

	utils.RespondWithJSON(w, http.StatusOK, suggested)
}
