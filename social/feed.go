package social

import (
	"context"
	"net/http"

	"mise/db"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func stringSet(ctx context.Context, coll *mongo.Collection, filter bson.M, field string) map[string]bool {
	out := map[string]bool{}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return out
	}
	defer cursor.Close(ctx)
	var docs []bson.M
	if cursor.All(ctx, &docs) != nil {
		return out
	}
	for _, d := range docs {
		if v, ok := d[field].(string); ok {
			out[v] = true
		}
	}
	return out
}

// GetFeed returns enriched posts for scope=all|following|saved. Feed reads
// degrade to an empty list on failure rather than erroring the page.
func GetFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	viewerID := utils.GetUserIDFromContext(ctx)
	scope := r.URL.Query().Get("scope")
	offset, limit := utils.ParsePagination(r.URL.Query().Get("offset"), r.URL.Query().Get("limit"))

	match := bson.M{}
	switch scope {
	case "following":
		if viewerID == "" {
			utils.RespondWithJSON(w, http.StatusOK, []models.FeedPost{})
			return
		}
		var followData models.UserFollow
		err := db.FollowsCollection.FindOne(ctx, bson.M{"userid": viewerID}).Decode(&followData)
		if err != nil || len(followData.Follows) == 0 {
			utils.RespondWithJSON(w, http.StatusOK, []models.FeedPost{})
			return
		}
		match["userId"] = bson.M{"$in": followData.Follows}
	case "saved":
		if viewerID == "" {
			utils.RespondWithJSON(w, http.StatusOK, []models.FeedPost{})
			return
		}
		saved := stringSet(ctx, db.SavesCollection, bson.M{"userId": viewerID}, "postId")
		if len(saved) == 0 {
			utils.RespondWithJSON(w, http.StatusOK, []models.FeedPost{})
			return
		}
		ids := make([]string, 0, len(saved))
		for id := range saved {
			ids = append(ids, id)
		}
		match["_id"] = bson.M{"$in": hexToObjectIDs(ids)}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$skip", Value: int64(offset)}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$addFields", Value: bson.M{"postId": bson.M{"$toString": "$_id"}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "social_likes",
			"localField":   "postId",
			"foreignField": "postId",
			"as":           "likes",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "social_saves",
			"localField":   "postId",
			"foreignField": "postId",
			"as":           "saves",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "social_comments",
			"localField":   "postId",
			"foreignField": "postId",
			"as":           "comments",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "profiles",
			"localField":   "userId",
			"foreignField": "userid",
			"as":           "author",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"likeCount":    bson.M{"$size": "$likes"},
			"saveCount":    bson.M{"$size": "$saves"},
			"commentCount": bson.M{"$size": "$comments"},
			"chefName":     bson.M{"$first": "$author.chefName"},
			"avatarUrl":    bson.M{"$first": "$author.avatarUrl"},
		}}},
		{{Key: "$project", Value: bson.M{"likes": 0, "saves": 0, "comments": 0, "author": 0}}},
	}

	cursor, err := db.PostsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, []models.FeedPost{})
		return
	}
	defer cursor.Close(ctx)

	var posts []models.FeedPost
	if err := cursor.All(ctx, &posts); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, []models.FeedPost{})
		return
	}
	if posts == nil {
		posts = []models.FeedPost{}
	}

	// Per-viewer flags and recipe embeds.
	var liked, saved map[string]bool
	if viewerID != "" {
		liked = stringSet(ctx, db.LikesCollection, bson.M{"userId": viewerID}, "postId")
		saved = stringSet(ctx, db.SavesCollection, bson.M{"userId": viewerID}, "postId")
	}
	for i := range posts {
		id := posts[i].ID.Hex()
		posts[i].IsLiked = liked[id]
		posts[i].IsSaved = saved[id]

		var recipe models.Recipe
		if oid, err := hexToObjectID(posts[i].RecipeID); err == nil {
			if db.RecipesCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&recipe) == nil {
				posts[i].RecipeTitle = recipe.Title
				if len(recipe.Images) > 0 {
					posts[i].RecipeImage = recipe.Images[0]
				}
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, posts)
}
