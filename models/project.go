package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ProjectColors = []string{"orange", "blue", "red", "green", "purple", "yellow", "cyan"}

func ValidProjectColor(c string) bool {
	for _, v := range ProjectColors {
		if v == c {
			return true
		}
	}
	return false
}

// Project is a named folder; recipes, pairings and cost sheets point at it
// through their nullable projectId. Deleting a project unlinks members.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Color       string             `bson:"color" json:"color"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PairingAnalysis persists the AI response verbatim alongside the inputs.
type PairingAnalysis struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID      string                 `bson:"userId" json:"userId"`
	ProjectID   string                 `bson:"projectId,omitempty" json:"projectId,omitempty"`
	Ingredients []string               `bson:"ingredients" json:"ingredients"`
	Score       float64                `bson:"score" json:"score"`
	Analysis    map[string]interface{} `bson:"analysis" json:"analysis"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
}
