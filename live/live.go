package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSMessage struct {
	Type string `json:"type"`
}

// Global state: every connected listener. One event type for now; the hub
// only tells clients the roster changed, it never ships roster data.
var (
	listeners   = map[*websocket.Conn]bool{}
	listenersMu sync.Mutex
)

// HandleSocket upgrades the connection and parks it until the client hangs
// up. Inbound frames are drained and discarded; this channel is push-only.
func HandleSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	listenersMu.Lock()
	listeners[conn] = true
	listenersMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	listenersMu.Lock()
	delete(listeners, conn)
	listenersMu.Unlock()
}

// NotifyRosterChanged tells every listener to re-fetch the roster.
func NotifyRosterChanged() {
	jsonBytes, _ := json.Marshal(WSMessage{Type: "roster_changed"})

	listenersMu.Lock()
	defer listenersMu.Unlock()
	for conn := range listeners {
		if err := conn.WriteMessage(websocket.TextMessage, jsonBytes); err != nil {
			conn.Close()
			delete(listeners, conn)
		}
	}
}
