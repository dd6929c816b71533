package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jeanlucaslima/meditha/internal/adapters/email"
	httpadapter "github.com/jeanlucaslima/meditha/internal/adapters/http"
	"github.com/jeanlucaslima/meditha/internal/adapters/http/handlers"
	"github.com/jeanlucaslima/meditha/internal/adapters/payment"
	"github.com/jeanlucaslima/meditha/internal/adapters/persistence"
	"github.com/jeanlucaslima/meditha/internal/adapters/security"
	"github.com/jeanlucaslima/meditha/internal/adapters/websocket"
	"github.com/jeanlucaslima/meditha/internal/application/usecases"
	"github.com/jeanlucaslima/meditha/internal/domain/quiz"
	"github.com/jeanlucaslima/meditha/internal/infra/config"
	infraDB "github.com/jeanlucaslima/meditha/internal/infra/db"
	"github.com/jeanlucaslima/meditha/internal/infra/logger"
	"github.com/jeanlucaslima/meditha/internal/infra/scheduler"

	_ "github.com/jeanlucaslima/meditha/docs"
)

// @title Meditha API
// @version 1.0
// @description Backend do funil de quiz do Desafio de 7 Noites (sono natural em 7 dias).
// @contact.name Suporte Meditha
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Logger
	logger.Init()
	cfg := config.Load()

	// 2. Banco de Dados
	db, err := infraDB.NewSQLiteConnection(cfg.Database.DSN)
	if err != nil {
		logger.Error("Não foi possível conectar ao banco", "erro", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := runMigrations(db); err != nil {
		logger.Error("Falha na migração", "erro", err)
		os.Exit(1)
	}

	// 3a. Adapters (Persistence)
	leadRepo := persistence.NewSQLiteLeadRepository(db)
	paymentRepo := persistence.NewSQLiteBillingRepository(db)
	webhookRepo := persistence.NewSQLiteWebhookEventRepository(db)
	userRepo := persistence.NewSQLiteUserRepository(db)
	tokenRepo := persistence.NewSQLiteMagicTokenRepository(db)
	eventRepo := persistence.NewSQLiteEventRepository(db)

	// Sessões do quiz vivem em memória
	sessionRepo := persistence.NewInMemorySessionRepository()

	leadLimiter := persistence.NewFixedWindowRateLimiter(cfg.RateLimit.LeadMax, cfg.RateLimit.Window)
	resendLimiter := persistence.NewFixedWindowRateLimiter(cfg.RateLimit.ResendMax, cfg.RateLimit.ResendWindow)
	idempotency := persistence.NewMemoryIdempotencyStore(24 * time.Hour)

	// 3b. Adapters (WebSocket Hub)
	wsHub := websocket.NewHub()
	// Inicia o Hub em background
	go wsHub.Run()

	// 3c. Adapters (Integrações)
	tokenService := security.NewJWTService(cfg.JWTSecret)
	checkoutProvider := payment.NewStripeCheckoutProvider(cfg.Stripe)
	emailSender := email.NewMailgunSender(cfg.Mailgun)

	// 4. Application (Use Cases)
	sessionUC := usecases.NewSessionUseCase(sessionRepo, eventRepo, func() quiz.Storage {
		return persistence.NewMemoryStateStorage()
	})
	leadUC := usecases.NewSubmitLeadUseCase(leadRepo, eventRepo, leadLimiter)
	checkoutUC := usecases.NewCreateCheckoutUseCase(leadRepo, checkoutProvider, idempotency, eventRepo)
	fulfillmentUC := usecases.NewFulfillmentUseCase(webhookRepo, paymentRepo, userRepo, tokenRepo, leadRepo, emailSender, cfg.AppOrigin)
	accessUC := usecases.NewAccessUseCase(userRepo, tokenRepo, checkoutProvider, emailSender, tokenService, resendLimiter, cfg.AppOrigin)
	eventUC := usecases.NewEventUseCase(eventRepo)

	// 5. Adapters (Handlers)
	sessionHandler := handlers.NewSessionHandler(sessionUC)
	leadHandler := handlers.NewLeadHandler(leadUC)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUC)
	webhookHandler := handlers.NewWebhookHandler(checkoutProvider, fulfillmentUC)
	accessHandler := handlers.NewAccessHandler(accessUC)
	eventHandler := handlers.NewEventHandler(eventUC)
	wsHandler := websocket.NewWebSocketHandler(wsHub, sessionRepo)

	// 6. Rotinas de manutenção
	sched := scheduler.New(tokenRepo, leadLimiter, resendLimiter, idempotency)
	if err := sched.Start(); err != nil {
		logger.Error("Falha ao iniciar rotinas de manutenção", "erro", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// 7. Router
	router := httpadapter.NewRouter(
		sessionHandler,
		leadHandler,
		checkoutHandler,
		webhookHandler,
		accessHandler,
		eventHandler,
		wsHandler,
		tokenService,
		cfg.AllowedOrigins,
	)

	// 8. Servidor
	logger.Info("Iniciando servidor", "porta", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), router); err != nil {
		logger.Error("Falha no servidor HTTP", "erro", err)
	}
}

func runMigrations(db *sql.DB) error {
	files, err := os.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("erro ao ler diretório migrations: %w", err)
	}

	var filenames []string
	for _, f := range files {
		if filepath.Ext(f.Name()) == ".sql" {
			filenames = append(filenames, f.Name())
		}
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		path := filepath.Join("migrations", filename)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("erro ao ler %s: %w", filename, err)
		}

		logger.Info("Executando migração", "arquivo", filename)
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("erro ao executar %s: %w", filename, err)
		}
	}
	return nil
}
