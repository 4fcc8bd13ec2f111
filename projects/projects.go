package projects

import (
	"encoding/json"
	"net/http"
	"time"

	"mise/db"
	"mise/models"
	"mise/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// linkable maps the item type in the URL to its collection.
func linkable(itemType string) *mongo.Collection {
	switch itemType {
	case "recipes":
		return db.RecipesCollection
	case "pairings":
		return db.PairingsCollection
	case "foodcosts":
		return db.FoodCostsCollection
	}
	return nil
}

func GetProjects(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	ctx := r.Context()

	cursor, err := db.ProjectsCollection.Find(ctx, bson.M{"userId": userID},
		db.OptionsFindLatest(100))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(projects) == 0 {
		projects = []models.Project{}
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GetProject returns the folder plus its member ids, gathered by querying the
// linked collections for this projectId.
func GetProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	ctx := r.Context()
	var project models.Project
	if err := db.ProjectsCollection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&project); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}

	members := utils.M{}
	for _, itemType := range []string{"recipes", "pairings", "foodcosts"} {
		ids := []string{}
		cursor, err := linkable(itemType).Find(ctx, bson.M{"projectId": id.Hex(), "userId": userID})
		if err == nil {
			var docs []bson.M
			if cursor.All(ctx, &docs) == nil {
				for _, d := range docs {
					if oid, ok := d["_id"].(primitive.ObjectID); ok {
						ids = append(ids, oid.Hex())
					}
				}
			}
		}
		members[itemType] = ids
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"project": project, "members": members})
}

type projectBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func CreateProject(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var body projectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if body.Color == "" {
		body.Color = "orange"
	}
	if !models.ValidProjectColor(body.Color) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid color")
		return
	}

	now := time.Now()
	project := models.Project{
		UserID:      userID,
		Title:       body.Title,
		Description: body.Description,
		Color:       body.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := db.ProjectsCollection.InsertOne(r.Context(), project)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}
	project.ID = res.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusCreated, project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	var body projectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	updates := bson.M{"updatedAt": time.Now()}
	if body.Title != "" {
		updates["title"] = body.Title
	}
	if body.Description != "" {
		updates["description"] = body.Description
	}
	if body.Color != "" {
		if !models.ValidProjectColor(body.Color) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid color")
			return
		}
		updates["color"] = body.Color
	}

	res, err := db.ProjectsCollection.UpdateOne(r.Context(),
		bson.M{"_id": id, "userId": userID}, bson.M{"$set": updates})
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// DeleteProject unlinks members (clears projectId) before removing the folder
// itself. Independent calls; a failure mid-sequence leaves partial unlinks.
func DeleteProject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid project id")
		return
	}

	ctx := r.Context()
	for _, itemType := range []string{"recipes", "pairings", "foodcosts"} {
		linkable(itemType).UpdateMany(ctx,
			bson.M{"projectId": id.Hex(), "userId": userID},
			bson.M{"$set": bson.M{"projectId": ""}})
	}

	res, err := db.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil || res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// LinkItem sets the projectId on a recipe, pairing or cost sheet.
func LinkItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setProjectID(w, r, ps, ps.ByName("id"))
}

// UnlinkItem clears the projectId, leaving the item itself intact.
func UnlinkItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setProjectID(w, r, ps, "")
}

func setProjectID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, projectID string) {
	userID := utils.GetUserIDFromRequest(r)

	coll := linkable(ps.ByName("itemType"))
	if coll == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown item type")
		return
	}
	itemID, err := primitive.ObjectIDFromHex(ps.ByName("itemId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	res, err := coll.UpdateOne(r.Context(),
		bson.M{"_id": itemID, "userId": userID},
		bson.M{"$set": bson.M{"projectId": projectID}})
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
}
