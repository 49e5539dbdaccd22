// Package mail provides the SMTP implementation of the outgoing mail port.
// Пакет mail предоставляет SMTP реализацию порта исходящей почты.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/andrewhigh08/account-service/internal/config"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
)

// SMTPMailer implements port.Mailer over a plain SMTP relay.
// SMTPMailer реализует port.Mailer поверх обычного SMTP релея.
//
// A new connection is dialed per message; the delivery volume here is a
// handful of transactional emails, not a campaign sender.
// Для каждого письма устанавливается новое соединение; объём доставки
// здесь - несколько транзакционных писем, а не рассылка.
type SMTPMailer struct {
	client   *gomail.Client // SMTP client / SMTP клиент
	from     string         // Sender address / Адрес отправителя
	fromName string         // Sender display name / Отображаемое имя отправителя
	logger   *logger.Logger // Logger instance / Экземпляр логгера
}

// NewSMTPMailer creates a new SMTPMailer from SMTP configuration.
// NewSMTPMailer создаёт новый SMTPMailer из конфигурации SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, log *logger.Logger) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.From,
		fromName: cfg.FromName,
		logger:   log.WithComponent("smtp_mailer"),
	}, nil
}

// Send delivers an HTML email to one recipient.
// Send доставляет HTML письмо одному получателю.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("email sent", "to", to, "subject", subject)
	return nil
}
