// Package notify реализует каналы доставки уведомлений: внутрисистемные
// (строка в БД плюс WebSocket-пуш), email через SMTP и SMS через
// HTTP-шлюз. Каналы независимы, сбой одного не трогает остальные.
package notify

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/ws"
)

// NotificationStore — хранилище внутрисистемных уведомлений
type NotificationStore interface {
	Insert(ctx context.Context, n out.InAppNotification) (string, error)
}

// CompositeNotifier объединяет три канала доставки
type CompositeNotifier struct {
	store  NotificationStore
	hub    *ws.Hub
	mailer *Mailer
	sms    *SMSGateway
	log    *logger.Logger
}

// NewCompositeNotifier создает новый уведомитель
func NewCompositeNotifier(store NotificationStore, hub *ws.Hub, mailer *Mailer, sms *SMSGateway, log *logger.Logger) *CompositeNotifier {
	return &CompositeNotifier{
		store:  store,
		hub:    hub,
		mailer: mailer,
		sms:    sms,
		log:    log,
	}
}

// SendInApp сохраняет уведомление и пытается доставить его через WebSocket.
// Вставка участвует в транзакции из контекста; пуш идет сразу и не
// считается ошибкой доставки, если пользователь не подключен.
func (n *CompositeNotifier) SendInApp(ctx context.Context, notification out.InAppNotification) error {
	id, err := n.store.Insert(ctx, notification)
	if err != nil {
		return err
	}

	if n.hub != nil && n.hub.IsUserConnected(notification.UserID) {
		if err := n.hub.SendTypedMessage(notification.UserID, "notification", map[string]any{
			"id":      id,
			"title":   notification.Title,
			"message": notification.Message,
			"type":    notification.NotificationType,
		}); err != nil {
			n.log.Warn(logger.Entry{
				Action:  "ws_notification_push_failed",
				Message: err.Error(),
			})
		}
	}
	return nil
}

// SendEmail отправляет письмо
func (n *CompositeNotifier) SendEmail(ctx context.Context, address, subject, body string) error {
	return n.mailer.Send(ctx, address, subject, body)
}

// SendSMS отправляет SMS
func (n *CompositeNotifier) SendSMS(ctx context.Context, phone, message string) error {
	return n.sms.Send(ctx, phone, message)
}
