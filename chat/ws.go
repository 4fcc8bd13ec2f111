package chat

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mise/db"
	"mise/utils"
)

var (
	clients = struct {
		sync.RWMutex
		m map[string]*websocket.Conn
	}{m: make(map[string]*websocket.Conn)}

	upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
)

func registerClient(userID string, conn *websocket.Conn) {
	clients.Lock()
	clients.m[userID] = conn
	clients.Unlock()
}

// unregisterClient drops the registration only if conn still owns it. A fast
// reconnect replaces the map entry before the old handler's deferred cleanup
// runs, and that cleanup must not evict the newer socket.
func unregisterClient(userID string, conn *websocket.Conn) {
	clients.Lock()
	if clients.m[userID] == conn {
		delete(clients.m, userID)
	}
	clients.Unlock()
}

// HandleWebSocket upgrades the connection and keeps a per-user registration
// for the lifetime of the socket. The registration is removed on any read
// error, so a dropped client stops receiving pushes immediately.
func HandleWebSocket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("ws upgrade:", err)
		return
	}

	registerClient(userID, conn)
	log.Println("ws connected:", userID)

	defer func() {
		unregisterClient(userID, conn)
		conn.Close()
		log.Println("ws disconnected:", userID)
	}()

	for {
		var in struct {
			Type    string `json:"type"` // message | typing | presence
			ChatID  string `json:"chatId"`
			Content string `json:"content"`
			Online  bool   `json:"online"`
		}
		if err := conn.ReadJSON(&in); err != nil {
			break
		}

		switch in.Type {
		case "message":
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			chat, err := loadChatForUser(ctx, in.ChatID, userID)
			if err == nil {
				// persistMessage broadcasts to the participants itself
				if _, err := persistMessage(ctx, chat, userID, in.Content); err != nil {
					log.Println("ws message:", err)
				}
			}
			cancel()

		case "typing":
			broadcastToChat(in.ChatID, utils.M{
				"type":   "typing",
				"from":   userID,
				"chatId": in.ChatID,
			})

		case "presence":
			broadcastGlobal(utils.M{
				"type":   "presence",
				"from":   userID,
				"online": in.Online,
			})
		}
	}
}

// broadcastToParticipants pushes a payload to every connected participant.
func broadcastToParticipants(participants []string, payload interface{}) {
	clients.RLock()
	defer clients.RUnlock()
	for _, p := range participants {
		if peer, ok := clients.m[p]; ok {
			_ = peer.WriteJSON(payload)
		}
	}
}

func broadcastToChat(chatHex string, payload interface{}) {
	cid, err := primitive.ObjectIDFromHex(chatHex)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var chat Chat
	if err := db.ChatsCollection.FindOne(ctx, bson.M{"_id": cid}).Decode(&chat); err != nil {
		return
	}
	broadcastToParticipants(chat.Participants, payload)
}

func broadcastGlobal(payload interface{}) {
	clients.RLock()
	defer clients.RUnlock()
	for _, conn := range clients.m {
		_ = conn.WriteJSON(payload)
	}
}
