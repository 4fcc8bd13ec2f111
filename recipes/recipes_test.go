package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mise/models"
)

func validBody() recipeBody {
	return recipeBody{
		Title:        "Beurre Blanc",
		Difficulty:   "Intermediate",
		PrepTime:     20,
		PrepTimeUnit: "mins",
		Servings:     4,
	}
}

func TestValidateAcceptsCompleteBody(t *testing.T) {
	b := validBody()
	assert.Empty(t, b.validate())
}

func TestValidateRejectsMissingTitle(t *testing.T) {
	b := validBody()
	b.Title = ""
	assert.Equal(t, "Title is required", b.validate())
}

func TestValidateRejectsUnknownDifficulty(t *testing.T) {
	b := validBody()
	b.Difficulty = "Impossible"
	assert.Equal(t, "Invalid difficulty", b.validate())
}

func TestValidateRejectsUnknownPrepTimeUnit(t *testing.T) {
	b := validBody()
	b.PrepTimeUnit = "days"
	assert.Equal(t, "Invalid prep time unit", b.validate())
}

func TestValidateRejectsUnknownChefNoteType(t *testing.T) {
	b := validBody()
	b.ChefNotes = []models.ChefNote{{Type: "rant", Content: "no"}}
	assert.Contains(t, b.validate(), "Invalid chef note type")
}

func TestNormalizeFillsIDsAndEmptySlices(t *testing.T) {
	b := validBody()
	b.Subdivisions = []models.IngredientSubdivision{
		{Title: "Sauce", Items: []models.IngredientItem{{Name: "butter", Quantity: "200", Unit: "g"}}},
	}
	b.ChefNotes = []models.ChefNote{{Type: models.NoteTip, Content: "whisk off heat"}}

	normalize(&b)

	require.Len(t, b.Subdivisions, 1)
	assert.NotEmpty(t, b.Subdivisions[0].ID)
	assert.NotEmpty(t, b.Subdivisions[0].Items[0].ID)
	assert.NotEmpty(t, b.ChefNotes[0].ID)
	assert.NotNil(t, b.PrepSteps)
	assert.NotNil(t, b.Attachments)
}

func TestNormalizeKeepsExistingIDs(t *testing.T) {
	b := validBody()
	b.Subdivisions = []models.IngredientSubdivision{{ID: "sub-1", Title: "Base"}}

	normalize(&b)
	assert.Equal(t, "sub-1", b.Subdivisions[0].ID)
}
