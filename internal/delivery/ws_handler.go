package delivery

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Vovarama1992/memo_coach/internal/session"
)

// WSHandler streams session snapshots. The socket is read only to notice the
// client going away.
type WSHandler struct {
	sessions *session.Service
	upgrader websocket.Upgrader
}

func NewWSHandler(sessions *session.Service) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	updates, cancel, err := h.sessions.Subscribe(r.Context(), id)
	if err != nil {
		respondWithError(w, nil, "ws", err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[session.Snapshot]{Type: "snapshot", Payload: snap}); err != nil {
				log.Printf("[ws] write error: %v", err)
				return
			}
		case <-readerDone:
			return
		}
	}
}
