package profile

import (
	"encoding/json"
	"net/http"
	"time"

	"mise/config"
	"mise/db"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the caller's profile, provisioning one from the user
// record when it does not exist yet (first sign-in).
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	ctx := r.Context()

	var prof models.UserProfile
	err := db.ProfilesCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&prof)
	if err == mongo.ErrNoDocuments {
		var user models.User
		if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		now := time.Now()
		prof = models.UserProfile{
			UserID:    user.UserID,
			Email:     user.Email,
			Username:  user.Username,
			Tier:      models.TierFree,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.ProfilesCollection.InsertOne(ctx, prof); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to provision profile")
			return
		}
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, prof)
}

func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		FullName  *string `json:"fullName"`
		ChefName  *string `json:"chefName"`
		Bio       *string `json:"bio"`
		AutoRenew *bool   `json:"autoRenew"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if body.FullName != nil {
		updates["fullName"] = *body.FullName
	}
	if body.ChefName != nil {
		updates["chefName"] = *body.ChefName
	}
	if body.Bio != nil {
		updates["bio"] = *body.Bio
	}
	if body.AutoRenew != nil {
		updates["autoRenew"] = *body.AutoRenew
	}

	res, err := db.ProfilesCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID}, bson.M{"$set": updates})
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, "Update failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

func EditProfilePic(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	cfg, err := config.Load()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Config error")
		return
	}
	url, thumb, err := utils.SaveImage(file, header, cfg.UploadDir+"/userpic", "/static/uploads/userpic")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving file")
		return
	}

	_, err = db.ProfilesCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatarUrl": url, "avatarThumbUrl": thumb, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Update failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"avatarUrl": url, "avatarThumbUrl": thumb})
}

func UpdatePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !models.ValidTier(body.Tier) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tier")
		return
	}

	_, err := db.ProfilesCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"tier": body.Tier, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Update failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"tier": body.Tier})
}

// DeleteProfile only records the deletion request; accounts are never
// hard-deleted in-app.
func DeleteProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	_, err := db.ProfilesCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"deletionRequested": true, "updatedAt": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Request failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deletion requested"})
}

// GetUserProfile is the public chef page: profile plus follower counts.
func GetUserProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	username := ps.ByName("username")
	ctx := r.Context()

	var prof models.UserProfile
	if err := db.ProfilesCollection.FindOne(ctx, bson.M{"username": username}).Decode(&prof); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Chef not found")
		return
	}

	var followData models.UserFollow
	err := db.FollowsCollection.FindOne(ctx, bson.M{"userid": prof.UserID}).Decode(&followData)
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch follow data")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"profile":   prof,
		"followers": len(followData.Followers),
		"following": len(followData.Follows),
	})
}
