package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/jeanlucaslima/meditha/internal/adapters/http/handlers"
	"github.com/jeanlucaslima/meditha/internal/adapters/http/middlewares"
	"github.com/jeanlucaslima/meditha/internal/adapters/websocket"
	"github.com/jeanlucaslima/meditha/internal/ports"

	_ "github.com/jeanlucaslima/meditha/docs"
)

// NewRouter configura as rotas e middlewares.
func NewRouter(
	sessionHandler *handlers.SessionHandler,
	leadHandler *handlers.LeadHandler,
	checkoutHandler *handlers.CheckoutHandler,
	webhookHandler *handlers.WebhookHandler,
	accessHandler *handlers.AccessHandler,
	eventHandler *handlers.EventHandler,
	wsHandler *websocket.WebSocketHandler,
	tokenService ports.TokenService,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Configuração CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Rota de Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Swagger
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// WebSocket: snapshots de estado da sessão (sincronização entre abas)
	r.Get("/ws", wsHandler.HandleWS)

	// Sessões do quiz
	r.Route("/quiz/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Start)
		r.Get("/{id}", sessionHandler.Get)
		r.Post("/{id}/answers", sessionHandler.Answer)
		r.Post("/{id}/lead", sessionHandler.Lead)
		r.Post("/{id}/next", sessionHandler.Next)
		r.Post("/{id}/prev", sessionHandler.Prev)
		r.Post("/{id}/reset", sessionHandler.Reset)
		r.Get("/{id}/steps/{step}", sessionHandler.Content)
	})

	// API do funil
	r.Route("/api", func(r chi.Router) {
		r.Post("/lead", leadHandler.Submit)
		r.Post("/checkout", checkoutHandler.Create)
		r.Post("/webhook/stripe", webhookHandler.HandleStripe)
		r.Post("/events", eventHandler.Track)

		// Acesso à área de membros
		r.Route("/acesso", func(r chi.Router) {
			r.Post("/reenviar", accessHandler.Resend)
			r.Post("/trocar", accessHandler.Consume)

			// Rotas protegidas (sessão de membro)
			r.Group(func(r chi.Router) {
				r.Use(middlewares.AuthMiddleware(tokenService))
				r.Get("/me", accessHandler.GetMe)
			})
		})

		// Consulta de eventos (protegida)
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokenService))
			r.Get("/events/{sessionId}", eventHandler.ListBySession)
		})
	})

	return r
}
