package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mise/config"
	"mise/db"
	"mise/middleware"
	"mise/models"
	"mise/rdx"
	"mise/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type credentials struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func newAccessToken(userID, username string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	claims := middleware.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func refreshKey(token string) string { return "refresh:" + token }

func issueTokens(ctx context.Context, w http.ResponseWriter, user models.User) {
	access, err := newAccessToken(user.UserID, user.Username)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	refresh := uuid.New().String()
	if err := rdx.Set(ctx, refreshKey(refresh), user.UserID, refreshTokenTTL); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"token":        access,
		"refreshToken": refresh,
		"userid":       user.UserID,
		"username":     user.Username,
	})
}

// Register creates a user and auto-provisions the matching profile document.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.Username = strings.TrimSpace(body.Username)
	if body.Email == "" || body.Username == "" || len(body.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Email, username and a password of 8+ characters are required")
		return
	}

	ctx := r.Context()
	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"email": body.Email},
		{"username": body.Username},
	}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Email or username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:       uuid.New().String(),
		Email:        body.Email,
		Username:     body.Username,
		PasswordHash: string(hash),
		ConfirmedAt:  &now,
		Metadata:     map[string]interface{}{},
		CreatedAt:    now,
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	profile := models.UserProfile{
		UserID:    user.UserID,
		Email:     user.Email,
		Username:  user.Username,
		Tier:      models.TierFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.ProfilesCollection.InsertOne(ctx, profile); err != nil {
		// Profile is re-provisioned on first read; the account itself is fine.
		utils.RespondWithJSON(w, http.StatusCreated, utils.M{"userid": user.UserID})
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"userid": user.UserID})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	ctx := r.Context()
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(body.Email))}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	issueTokens(ctx, w, user)
}

func LogoutUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.RefreshToken != "" {
		_ = rdx.Del(r.Context(), refreshKey(body.RefreshToken))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "logged out"})
}

// RefreshToken rotates the refresh token and issues a fresh access token.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing refresh token")
		return
	}

	ctx := r.Context()
	userID, err := rdx.Get(ctx, refreshKey(body.RefreshToken))
	if err != nil || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	_ = rdx.Del(ctx, refreshKey(body.RefreshToken))

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unknown user")
		return
	}

	issueTokens(ctx, w, user)
}

// GetSession returns the opaque-ish session payload: id, email, confirmation
// timestamp and the metadata bag.
func GetSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Session user not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"userid":      user.UserID,
		"email":       user.Email,
		"confirmedAt": user.ConfirmedAt,
		"metadata":    user.Metadata,
	})
}
