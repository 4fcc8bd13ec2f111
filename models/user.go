package models

import "time"

type PlanTier string

const (
	TierFree          PlanTier = "free"
	TierPlatinum      PlanTier = "platinum"
	TierPlatinumPrime PlanTier = "platinum_prime"
)

func ValidTier(t string) bool {
	switch PlanTier(t) {
	case TierFree, TierPlatinum, TierPlatinumPrime:
		return true
	}
	return false
}

type User struct {
	UserID       string                 `bson:"userid" json:"userid"`
	Email        string                 `bson:"email" json:"email"`
	Username     string                 `bson:"username" json:"username"`
	PasswordHash string                 `bson:"passwordHash" json:"-"`
	ConfirmedAt  *time.Time             `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	Metadata     map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt    time.Time              `bson:"createdAt" json:"createdAt"`
}

type UserProfile struct {
	UserID          string    `bson:"userid" json:"userid"`
	Email           string    `bson:"email" json:"email"`
	Username        string    `bson:"username" json:"username"`
	FullName        string    `bson:"fullName,omitempty" json:"fullName,omitempty"`
	ChefName        string    `bson:"chefName,omitempty" json:"chefName,omitempty"`
	Bio             string    `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL       string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	AvatarThumbURL  string    `bson:"avatarThumbUrl,omitempty" json:"avatarThumbUrl,omitempty"`
	Tier            PlanTier  `bson:"tier" json:"tier"`
	IsVerified      bool      `bson:"isVerified" json:"isVerified"`
	AutoRenew       bool      `bson:"autoRenew" json:"autoRenew"`
	DeletionRequest bool      `bson:"deletionRequested" json:"deletionRequested"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UserFollow struct {
	UserID    string   `bson:"userid" json:"userid"`
	Follows   []string `bson:"follows" json:"follows"`
	Followers []string `bson:"followers" json:"followers"`
}

type UserSuggest struct {
	UserID      string `bson:"userid" json:"userid"`
	Username    string `bson:"username" json:"username"`
	ChefName    string `bson:"chefName,omitempty" json:"chefName,omitempty"`
	Bio         string `bson:"bio,omitempty" json:"bio,omitempty"`
	IsFollowing bool   `bson:"-" json:"is_following"`
}
