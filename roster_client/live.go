package main

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"rosterhub/roster"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type string `json:"type"`
}

// SubscribeRosterEvents follows the server's roster_changed stream and
// triggers a refresh for each event. Reconnects with a flat 2 second
// backoff; the app works fine without the stream, it just refreshes less.
func SubscribeRosterEvents(ctx context.Context, baseURL string, ctrl *roster.Controller) {
	wsURL := websocketURL(baseURL)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			time.Sleep(2 * time.Second)
			continue
		}

		if err := readRosterEvents(ctx, conn, ctrl); err != nil {
			log.Println("Roster event stream closed:", err)
		}
		conn.Close()

		time.Sleep(2 * time.Second)
	}
}

func readRosterEvents(ctx context.Context, conn *websocket.Conn, ctrl *roster.Controller) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg wsMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			continue
		}

		if msg.Type == "roster_changed" {
			ctrl.Refresh()
		}
	}
}

func websocketURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return strings.Replace(baseURL, "http", "ws", 1) + "/ws"
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	return u.String()
}
