package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PadroesDeRateLimit(t *testing.T) {
	// Valor vazio não converte e cai no padrão
	for _, key := range []string{
		"RATE_LIMIT_LEAD_MAX",
		"RATE_LIMIT_RESEND_MAX",
		"RATE_LIMIT_WINDOW_MIN",
		"RATE_LIMIT_RESEND_WINDOW_MIN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	// Captura de lead: 1 por sessão a cada 5 minutos
	assert.Equal(t, 1, cfg.RateLimit.LeadMax)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.Window)

	assert.Equal(t, 3, cfg.RateLimit.ResendMax)
	assert.Equal(t, 60*time.Minute, cfg.RateLimit.ResendWindow)
}

func TestLoad_SobrescritaPorEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_LEAD_MAX", "2")
	t.Setenv("RATE_LIMIT_WINDOW_MIN", "30")

	cfg := Load()
	assert.Equal(t, 2, cfg.RateLimit.LeadMax)
	assert.Equal(t, 30*time.Minute, cfg.RateLimit.Window)
}

func TestLoad_OrigensDeCORS(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.com, https://b.com ,")

	cfg := Load()
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.AllowedOrigins)
}
