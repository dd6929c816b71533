package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contém as configurações da aplicação.
type Config struct {
	Port           string
	AppOrigin      string // origem pública do funil (links de acesso, redirects)
	AllowedOrigins []string
	Database       DatabaseConfig
	JWTSecret      string
	Stripe         StripeConfig
	Mailgun        MailgunConfig
	RateLimit      RateLimitConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string // Data Source Name (caminho do arquivo SQLite)
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
	SuccessURL    string
	CancelURL     string
}

type MailgunConfig struct {
	Domain string
	APIKey string
	Sender string
}

type RateLimitConfig struct {
	LeadMax      int
	ResendMax    int
	Window       time.Duration
	ResendWindow time.Duration
}

// Load carrega as configurações das variáveis de ambiente ou usa padrões.
// Um arquivo .env local, se existir, é carregado antes.
func Load() *Config {
	_ = godotenv.Load()

	appOrigin := getEnv("APP_ORIGIN", "http://localhost:3000")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AppOrigin:      appOrigin,
		AllowedOrigins: splitEnv("CORS_ORIGINS", appOrigin),
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite3"), // ncruces usa "sqlite3"
			DSN:    getEnv("DB_DSN", "./meditha.db"),
		},
		JWTSecret: getEnv("JWT_SECRET", "segredo_padrao_para_desenvolvimento"),
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceID:       getEnv("STRIPE_PRICE_ID", ""),
			SuccessURL:    getEnv("STRIPE_SUCCESS_URL", appOrigin+"/obrigado?session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:     getEnv("STRIPE_CANCEL_URL", appOrigin+"/quiz?passo=18"),
		},
		Mailgun: MailgunConfig{
			Domain: getEnv("MAILGUN_DOMAIN", ""),
			APIKey: getEnv("MAILGUN_API_KEY", ""),
			Sender: getEnv("MAILGUN_SENDER", "Meditha <acesso@meditha.com.br>"),
		},
		RateLimit: RateLimitConfig{
			// Captura de lead: 1 requisição por sessão a cada 5 minutos.
			LeadMax:      getEnvInt("RATE_LIMIT_LEAD_MAX", 1),
			ResendMax:    getEnvInt("RATE_LIMIT_RESEND_MAX", 3),
			Window:       time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MIN", 5)) * time.Minute,
			ResendWindow: time.Duration(getEnvInt("RATE_LIMIT_RESEND_WINDOW_MIN", 60)) * time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
