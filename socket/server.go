package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"

	"syntra_server/models"
)

func userRoom(userID string) string {
	return "user:" + userID
}

// NewSocketServer initializes and returns a new Socket.IO server. Clients
// emit "join" with their userId to receive notification pushes.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("Invalid userId in join request")
			return
		}
		log.Printf("Socket %s joined room for user %s\n", c.ID(), userID)
		c.Join(userRoom(userID))
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, userID string) {
		c.Leave(userRoom(userID))
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return server
}

// NotificationHub pushes notification records to connected recipients.
type NotificationHub struct {
	Server *socketio.Server
}

// PushNotification broadcasts a notification into the recipient's room.
// Delivery is best-effort; users without an open socket see the record on
// their next poll.
func (h *NotificationHub) PushNotification(userID string, notification models.Notification) {
	h.Server.BroadcastToRoom("/", userRoom(userID), "notification", notification)
}
