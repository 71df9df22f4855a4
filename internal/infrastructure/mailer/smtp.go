package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jhoicas/shop-admin-api/pkg/config"
)

// SMTPMailer envío de correos transaccionales por SMTP plano.
// Implementa auth.Mailer.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordReset envía el token de reset al correo del usuario.
// El token vence a los 15 minutos y es de un solo uso.
func (m *SMTPMailer) SendPasswordReset(to, token string) error {
	subject := "Restablecer contraseña"
	body := fmt.Sprintf(
		"Recibimos una solicitud para restablecer tu contraseña.\r\n\r\n"+
			"Usa este token dentro de los próximos 15 minutos:\r\n\r\n%s\r\n\r\n"+
			"Si no fuiste tú, ignora este correo.\r\n", token)

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(m.cfg.Addr(), auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("enviar correo de reset: %w", err)
	}
	return nil
}
