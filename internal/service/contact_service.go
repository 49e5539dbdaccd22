package service

import (
	"context"

	"github.com/andrewhigh08/account-service/internal/pkg/apperror"
	"github.com/andrewhigh08/account-service/internal/pkg/logger"
	"github.com/andrewhigh08/account-service/internal/port"
)

// ContactService implements port.ContactService interface.
// ContactService реализует интерфейс port.ContactService.
//
// Forwards contact form submissions to the support mailbox. Unlike the
// transactional emails, here the delivery failure is surfaced to the
// client, since delivery is the whole point of the endpoint.
// Пересылает сообщения формы обратной связи в ящик поддержки. В отличие
// от транзакционных писем, здесь сбой доставки возвращается клиенту,
// поскольку доставка и есть смысл эндпоинта.
type ContactService struct {
	mailer       port.Mailer    // Outbound mail / Исходящая почта
	supportEmail string         // Support inbox address / Адрес ящика поддержки
	logger       *logger.Logger // Logger instance / Экземпляр логгера
}

// NewContactService creates a new ContactService instance.
// NewContactService создаёт новый экземпляр ContactService.
func NewContactService(mailer port.Mailer, supportEmail string, log *logger.Logger) *ContactService {
	return &ContactService{
		mailer:       mailer,
		supportEmail: supportEmail,
		logger:       log.WithComponent("contact_service"),
	}
}

// SendContact forwards a contact form message to the support mailbox.
// SendContact пересылает сообщение формы обратной связи в поддержку.
func (s *ContactService) SendContact(ctx context.Context, name, email, subject, message string) error {
	log := s.logger.WithContext(ctx)

	err := s.mailer.Send(ctx, s.supportEmail, subject, contactEmailBody(name, email, message))
	log.LogEmailDelivery(s.supportEmail, subject, err)
	if err != nil {
		return apperror.Internal("No fue posible enviar el mensaje", err)
	}

	return nil
}
