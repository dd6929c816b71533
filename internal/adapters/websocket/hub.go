package websocket

import (
	"encoding/json"
	"sync"

	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
)

// Envelope é a mensagem enviada aos clientes conectados.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type registration struct {
	client *Client
	store  *quiz.Store
}

type sessionMessage struct {
	sessionID string
	data      []byte
}

// Hub distribui snapshots de estado para as abas conectadas de cada
// sessão. A primeira aba de uma sessão assina o Store; a última que sai
// cancela a assinatura.
type Hub struct {
	register   chan *registration
	unregister chan *Client
	broadcast  chan sessionMessage

	sessions     map[string]map[*Client]bool
	unsubscribes map[string]func()

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:     make(chan *registration),
		unregister:   make(chan *Client),
		broadcast:    make(chan sessionMessage, 64),
		sessions:     make(map[string]map[*Client]bool),
		unsubscribes: make(map[string]func()),
	}
}

// Run processa registros, saídas e broadcasts. Deve rodar em goroutine.
func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.add(reg)

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			clients := h.sessions[msg.sessionID]
			for client := range clients {
				select {
				case client.Send <- msg.data:
				default:
					// Cliente lento: descarta a conexão
					close(client.Send)
					delete(clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) add(reg *registration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessionID := reg.client.SessionID
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Client]bool)

		// Primeira aba da sessão: assina o Store
		h.unsubscribes[sessionID] = reg.store.Subscribe(func(s quiz.State) {
			h.pushState(sessionID, s)
		})
	}
	h.sessions[sessionID][reg.client] = true

	// Snapshot inicial para a aba recém-conectada
	if data, ok := marshalState(reg.store.GetState()); ok {
		select {
		case reg.client.Send <- data:
		default:
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[client.SessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		delete(clients, client)
		close(client.Send)
	}
	if len(clients) == 0 {
		delete(h.sessions, client.SessionID)
		if unsub := h.unsubscribes[client.SessionID]; unsub != nil {
			unsub()
			delete(h.unsubscribes, client.SessionID)
		}
	}
}

func (h *Hub) pushState(sessionID string, s quiz.State) {
	data, ok := marshalState(s)
	if !ok {
		return
	}
	select {
	case h.broadcast <- sessionMessage{sessionID: sessionID, data: data}:
	default:
		logger.Warn("Broadcast de estado descartado", "sessionId", sessionID)
	}
}

func marshalState(s quiz.State) ([]byte, bool) {
	payload, err := json.Marshal(s)
	if err != nil {
		logger.Error("Erro ao serializar estado da sessão", "erro", err)
		return nil, false
	}
	env := Envelope{Type: "state", Payload: payload}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, false
	}
	return data, true
}
