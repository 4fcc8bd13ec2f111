package chat

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUnreadMatchScopesToOwnChats(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	match := unreadMatch("alice", ids)

	in, ok := match["chatId"].(bson.M)
	require.True(t, ok, "chatId must be constrained")
	assert.Equal(t, bson.M{"$in": ids}, in)

	assert.Equal(t, false, match["deleted"])
	assert.Equal(t, bson.M{"$ne": "alice"}, match["sender"])
	assert.Equal(t, bson.M{"$ne": "alice"}, match["readBy"])
}

func TestUnreadMatchEmptyChatListMatchesNothing(t *testing.T) {
	match := unreadMatch("alice", []primitive.ObjectID{})

	in, ok := match["chatId"].(bson.M)
	require.True(t, ok)
	assert.Empty(t, in["$in"])
}

func TestUnregisterKeepsNewerConnection(t *testing.T) {
	first := &websocket.Conn{}
	second := &websocket.Conn{}

	registerClient("bob", first)
	registerClient("bob", second) // reconnect replaces the entry

	// stale cleanup from the first handler must not evict the live socket
	unregisterClient("bob", first)
	clients.RLock()
	got := clients.m["bob"]
	clients.RUnlock()
	assert.Same(t, second, got)

	unregisterClient("bob", second)
	clients.RLock()
	_, ok := clients.m["bob"]
	clients.RUnlock()
	assert.False(t, ok)
}
