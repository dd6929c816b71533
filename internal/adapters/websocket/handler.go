package websocket

import (
	"net/http"

	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

// WebSocketHandler faz o upgrade e pluga a aba na sessão do quiz.
// Várias abas da mesma sessão recebem o mesmo fluxo de snapshots.
type WebSocketHandler struct {
	hub      *Hub
	sessions ports.SessionRepository
}

func NewWebSocketHandler(hub *Hub, sessions ports.SessionRepository) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, sessions: sessions}
}

// HandleWS faz o upgrade da conexão HTTP para WebSocket.
func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId é obrigatório", http.StatusBadRequest)
		return
	}

	store, err := h.sessions.FindSessionByID(sessionID)
	if err != nil || store == nil {
		http.Error(w, "sessão não encontrada", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Falha no upgrade do WebSocket", "erro", err)
		return
	}

	client := &Client{
		Hub:       h.hub,
		Conn:      conn,
		Send:      make(chan []byte, 16),
		SessionID: sessionID,
	}

	h.hub.register <- &registration{client: client, store: store}

	go client.writePump()
	go client.readPump()
}
