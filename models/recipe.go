package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type IngredientItem struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Quantity string `bson:"quantity" json:"quantity"`
	Unit     string `bson:"unit" json:"unit"`
}

// IngredientSubdivision groups items under a titled section of the recipe
// ("For the sauce", "For the dough").
type IngredientSubdivision struct {
	ID    string           `bson:"id" json:"id"`
	Title string           `bson:"title" json:"title"`
	Items []IngredientItem `bson:"items" json:"items"`
}

type ChefNoteType string

const (
	NoteTip         ChefNoteType = "tip"
	NoteVariation   ChefNoteType = "variation"
	NoteAlternative ChefNoteType = "alternative"
	NoteSuggestion  ChefNoteType = "suggestion"
	NoteSubstitute  ChefNoteType = "substitute"
)

func ValidChefNoteType(t string) bool {
	switch ChefNoteType(t) {
	case NoteTip, NoteVariation, NoteAlternative, NoteSuggestion, NoteSubstitute:
		return true
	}
	return false
}

type ChefNote struct {
	ID      string       `bson:"id" json:"id"`
	Type    ChefNoteType `bson:"type" json:"type"`
	Content string       `bson:"content" json:"content"`
}

// Attachment references another saved item (pairing analysis, cost sheet,
// free-form context) by id.
type Attachment struct {
	ID       string `bson:"id" json:"id"`
	Type     string `bson:"type" json:"type"` // pairing | foodCost | context
	ItemID   string `bson:"itemId" json:"itemId"`
	ItemName string `bson:"itemName" json:"itemName"`
}

type Recipe struct {
	ID           primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	UserID       string                  `bson:"userId" json:"userId"`
	ProjectID    string                  `bson:"projectId,omitempty" json:"projectId,omitempty"`
	Title        string                  `bson:"title" json:"title"`
	Description  string                  `bson:"description" json:"description"`
	Difficulty   string                  `bson:"difficulty" json:"difficulty"` // Beginner | Intermediate | Advanced
	PrepTime     int                     `bson:"prepTime" json:"prepTime"`
	PrepTimeUnit string                  `bson:"prepTimeUnit" json:"prepTimeUnit"` // mins | hours
	Servings     int                     `bson:"servings" json:"servings"`
	Subdivisions []IngredientSubdivision `bson:"subdivisions" json:"subdivisions"`
	PrepSteps    []string                `bson:"prepSteps" json:"prepSteps"`
	Images       []string                `bson:"images" json:"images"`
	Tags         []string                `bson:"tags,omitempty" json:"tags,omitempty"`
	ChefNotes    []ChefNote              `bson:"chefNotes" json:"chefNotes"`
	Attachments  []Attachment            `bson:"attachments" json:"attachments"`
	IsDraft      bool                    `bson:"isDraft" json:"isDraft"`
	Views        int                     `bson:"views" json:"views"`
	CreatedAt    int64                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int64                   `bson:"updatedAt" json:"updatedAt"`
}
