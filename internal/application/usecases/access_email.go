package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/aymerick/raymond"

	"github.com/jeanlucaslima/meditha/internal/domain/access"
	"github.com/jeanlucaslima/meditha/internal/ports"
)

// IssueMagicLink gera um token de uso único, persiste apenas o hash e
// devolve a URL de acesso que vai no email.
func IssueMagicLink(ctx context.Context, tokens ports.MagicTokenRepository, user *access.User, appOrigin string, now time.Time) (string, error) {
	token, err := access.GenerateToken()
	if err != nil {
		return "", err
	}
	record := access.NewMagicToken(token, user.ID, user.Email, now)
	if err := tokens.Save(ctx, record); err != nil {
		return "", err
	}
	return appOrigin + "/acesso?token=" + token, nil
}

const accessEmailSubject = "Seu acesso ao Desafio de 7 Noites 🌙"

const accessEmailHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<body style="margin:0;padding:0;background:#f4f1fb;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:32px 16px;">
      <table role="presentation" width="520" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;padding:32px;">
        <tr><td>
          <h1 style="color:#4c2a85;font-size:22px;margin:0 0 16px;">Olá, {{nome}}! 🎉</h1>
          <p style="color:#333;font-size:16px;line-height:1.6;margin:0 0 16px;">
            Sua compra foi confirmada e o <strong>Desafio de 7 Noites</strong> já está liberado.
            Hoje mesmo você dá o primeiro passo para dormir melhor.
          </p>
          <p style="margin:24px 0;text-align:center;">
            <a href="{{url}}" style="background:#6d4aff;color:#ffffff;text-decoration:none;padding:14px 32px;border-radius:8px;font-size:16px;display:inline-block;">
              Acessar meu programa
            </a>
          </p>
          <p style="color:#666;font-size:13px;line-height:1.6;margin:0 0 8px;">
            O link é pessoal, de uso único e vale por 24 horas. Se expirar,
            peça um novo em {{origin}}/acesso informando este email.
          </p>
          <p style="color:#999;font-size:12px;margin:24px 0 0;">
            Você recebeu este email porque comprou o Desafio de 7 Noites com o endereço {{email}}.
          </p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const accessEmailText = `Olá, {{nome}}!

Sua compra foi confirmada e o Desafio de 7 Noites já está liberado.

Acesse seu programa pelo link (pessoal, de uso único, válido por 24 horas):

{{url}}

Se o link expirar, peça um novo em {{origin}}/acesso informando este email.

Bom descanso!`

// BuildAccessEmail monta a mensagem de boas-vindas com o magic link.
func BuildAccessEmail(nome, email, url string) ports.EmailMessage {
	origin := url
	if i := indexPath(url); i > 0 {
		origin = url[:i]
	}
	ctx := map[string]interface{}{
		"nome":   raymond.SafeString(nome),
		"email":  raymond.SafeString(email),
		"url":    raymond.SafeString(url),
		"origin": raymond.SafeString(origin),
	}
	return ports.EmailMessage{
		To:      email,
		ToName:  nome,
		Subject: accessEmailSubject,
		HTML:    renderTemplate(accessEmailHTML, ctx),
		Text:    renderTemplate(accessEmailText, ctx),
	}
}

func renderTemplate(tpl string, ctx map[string]interface{}) string {
	out, err := raymond.Render(tpl, ctx)
	if err != nil {
		return tpl
	}
	return out
}

// indexPath localiza o início do path em uma URL absoluta.
func indexPath(url string) int {
	rest := url
	start := 0
	if i := strings.Index(url, "://"); i >= 0 {
		start = i + 3
		rest = url[start:]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		return start + i
	}
	return -1
}
