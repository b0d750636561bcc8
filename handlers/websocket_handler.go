package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Polilla23/kempes-server/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering is delegated to the deployment (reverse
		// proxy / CORS config); accept all here.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes the caller to the live room of one competition.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error to the client.
		slog.Warn("websocket upgrade failed",
			slog.Int("competition_id", competitionID),
			slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, competitionID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
