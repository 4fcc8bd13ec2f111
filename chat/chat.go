package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mise/db"
	"mise/utils"
)

type Chat struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Participants []string           `bson:"participants" json:"participants"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    primitive.ObjectID `bson:"chatId" json:"chatId"`
	Sender    string             `bson:"sender" json:"sender"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	EditedAt  *time.Time         `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	Deleted   bool               `bson:"deleted" json:"deleted"`
	ReadBy    []string           `bson:"readBy,omitempty" json:"readBy,omitempty"`
}

// GetUserChats lists every conversation the viewer participates in,
// most recently active first.
func GetUserChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"updatedAt": -1})
	cursor, err := db.ChatsCollection.Find(ctx, bson.M{"participants": user}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch chats")
		return
	}
	defer cursor.Close(ctx)

	chats := []Chat{}
	if err := cursor.All(ctx, &chats); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode chats")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "chats": chats})
}

// StartChat returns the existing conversation for the participant set or
// creates one. The viewer must be among the participants.
func StartChat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)
	var body struct {
		Participants []string `json:"participants"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Participants) < 2 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least two participants required")
		return
	}
	found := false
	for _, p := range body.Participants {
		if p == user {
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusBadRequest, "Participants must include yourself")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"participants": bson.M{"$all": body.Participants, "$size": len(body.Participants)}}
	var existing Chat
	err := db.ChatsCollection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "chat": existing})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up chat")
		return
	}

	now := time.Now()
	chat := Chat{Participants: body.Participants, CreatedAt: now, UpdatedAt: now}
	res, err := db.ChatsCollection.InsertOne(ctx, chat)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create chat")
		return
	}
	chat.ID = res.InsertedID.(primitive.ObjectID)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "chat": chat})
}

// loadChatForUser fetches a chat and checks the viewer belongs to it.
func loadChatForUser(ctx context.Context, chatHex, user string) (*Chat, error) {
	chatID, err := primitive.ObjectIDFromHex(chatHex)
	if err != nil {
		return nil, errors.New("invalid chat ID")
	}
	var chat Chat
	if err := db.ChatsCollection.FindOne(ctx, bson.M{"_id": chatID, "participants": user}).Decode(&chat); err != nil {
		return nil, errors.New("chat not found")
	}
	return &chat, nil
}

// GetMessages returns a chronological page of a chat's messages.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	chat, err := loadChatForUser(ctx, ps.ByName("chatId"), user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	skip, limit := utils.ParsePagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	opts := options.Find().SetSort(bson.M{"createdAt": 1}).SetSkip(int64(skip)).SetLimit(int64(limit))
	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"chatId": chat.ID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	defer cursor.Close(ctx)

	msgs := []Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode messages")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "messages": msgs})
}

// SendMessage persists a message and pushes it to connected participants.
func SendMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	chat, err := loadChatForUser(ctx, ps.ByName("chatId"), user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	msg, err := persistMessage(ctx, chat, user, body.Content)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "message": msg})
}

func persistMessage(ctx context.Context, chat *Chat, sender, content string) (*Message, error) {
	if content == "" {
		return nil, errors.New("empty content")
	}
	msg := &Message{
		ChatID:    chat.ID,
		Sender:    sender,
		Content:   content,
		CreatedAt: time.Now(),
		ReadBy:    []string{sender},
	}
	res, err := db.MessagesCollection.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)

	db.ChatsCollection.UpdateOne(ctx,
		bson.M{"_id": chat.ID},
		bson.M{"$set": bson.M{"updatedAt": time.Now()}},
	)

	broadcastToParticipants(chat.Participants, utils.M{"type": "message", "message": msg})
	return msg, nil
}

// EditMessage rewrites the content of the viewer's own message.
func EditMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)
	msgID, err := primitive.ObjectIDFromHex(ps.ByName("messageId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	now := time.Now()
	res, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"_id": msgID, "sender": user, "deleted": false},
		bson.M{"$set": bson.M{"content": body.Content, "editedAt": now}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMessage soft-deletes the viewer's own message. The record stays so
// the conversation keeps its shape.
func DeleteMessage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)
	msgID, err := primitive.ObjectIDFromHex(ps.ByName("messageId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.MessagesCollection.UpdateOne(ctx,
		bson.M{"_id": msgID, "sender": user},
		bson.M{"$set": bson.M{"deleted": true, "content": ""}},
	)
	if err != nil || res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchMessages filters a chat's messages by case-insensitive substring.
func SearchMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	chat, err := loadChatForUser(ctx, ps.ByName("chatId"), user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	filter := bson.M{"chatId": chat.ID, "deleted": false}
	if term := r.URL.Query().Get("term"); term != "" {
		filter["content"] = bson.M{"$regex": primitive.Regex{Pattern: term, Options: "i"}}
	}

	skip, limit := utils.ParsePagination(r.URL.Query().Get("skip"), r.URL.Query().Get("limit"))
	opts := options.Find().SetSort(bson.M{"createdAt": 1}).SetSkip(int64(skip)).SetLimit(int64(limit))
	cursor, err := db.MessagesCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to search messages")
		return
	}
	defer cursor.Close(ctx)

	msgs := []Message{}
	if err := cursor.All(ctx, &msgs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode messages")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "messages": msgs})
}

// unreadMatch builds the $match stage for unread counting. Only messages in
// the viewer's own chats are counted.
func unreadMatch(user string, chatIDs []primitive.ObjectID) bson.M {
	return bson.M{
		"chatId":  bson.M{"$in": chatIDs},
		"deleted": false,
		"sender":  bson.M{"$ne": user},
		"readBy":  bson.M{"$ne": user},
	}
}

// GetUnreadCounts returns per-chat counts of messages the viewer has not
// read yet.
func GetUnreadCounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	chatIDs := []primitive.ObjectID{}
	chatCursor, err := db.ChatsCollection.Find(ctx, bson.M{"participants": user},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err == nil {
		var refs []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := chatCursor.All(ctx, &refs); err == nil {
			for _, ref := range refs {
				chatIDs = append(chatIDs, ref.ID)
			}
		}
	}

	pipeline := []bson.M{
		{"$match": unreadMatch(user, chatIDs)},
		{"$group": bson.M{"_id": "$chatId", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := db.MessagesCollection.Aggregate(ctx, pipeline)
	counts := map[string]int64{}
	if err == nil {
		var rows []struct {
			ChatID primitive.ObjectID `bson:"_id"`
			Count  int64              `bson:"count"`
		}
		if err := cursor.All(ctx, &rows); err == nil {
			for _, row := range rows {
				counts[row.ChatID.Hex()] = row.Count
			}
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "unread": counts})
}

// MarkRead records the viewer as having read everything in a chat.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	chat, err := loadChatForUser(ctx, ps.ByName("chatId"), user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}

	db.MessagesCollection.UpdateMany(ctx,
		bson.M{"chatId": chat.ID, "readBy": bson.M{"$ne": user}},
		bson.M{"$addToSet": bson.M{"readBy": user}},
	)
	w.WriteHeader(http.StatusNoContent)
}
