package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// Mailer отправляет письма через SMTP-релей из конфигурации.
type Mailer struct {
	cfg config.NotifyConfig
	log *logger.Logger

	// подменяется в тестах
	sendMail func(addr, from string, to []string, msg []byte) error
}

// NewMailer создает новый отправитель писем
func NewMailer(cfg config.NotifyConfig, log *logger.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: log,
		sendMail: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

// Send отправляет письмо одному адресату
func (m *Mailer) Send(ctx context.Context, address, subject, body string) error {
	if address == "" {
		return fmt.Errorf("empty recipient address")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", address)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	if err := m.sendMail(addr, m.cfg.FromEmail, []string{address}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m.log.Debug(logger.Entry{
		Action:  "email_sent",
		Message: fmt.Sprintf("to=%s subject=%q", address, subject),
	})
	return nil
}
