package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SocialPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	RecipeID  string             `bson:"recipeId" json:"recipeId"`
	Caption   string             `bson:"caption,omitempty" json:"caption,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Like and Save are (actor, post) join rows; uniqueness is enforced by the
// toggle handlers checking for an existing row before insert.
type Like struct {
	PostID    string    `bson:"postId" json:"postId"`
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Save struct {
	PostID    string    `bson:"postId" json:"postId"`
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    string             `bson:"postId" json:"postId"`
	UserID    string             `bson:"userId" json:"userId"`
	ChefName  string             `bson:"chefName,omitempty" json:"chefName,omitempty"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// FeedPost is a SocialPost enriched for the viewer.
type FeedPost struct {
	SocialPost   `bson:",inline"`
	RecipeTitle  string `bson:"recipeTitle,omitempty" json:"recipeTitle,omitempty"`
	RecipeImage  string `bson:"recipeImage,omitempty" json:"recipeImage,omitempty"`
	ChefName     string `bson:"chefName,omitempty" json:"chefName,omitempty"`
	AvatarURL    string `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	LikeCount    int64  `bson:"likeCount" json:"likeCount"`
	SaveCount    int64  `bson:"saveCount" json:"saveCount"`
	CommentCount int64  `bson:"commentCount" json:"commentCount"`
	IsLiked      bool   `bson:"-" json:"isLiked"`
	IsSaved      bool   `bson:"-" json:"isSaved"`
}
