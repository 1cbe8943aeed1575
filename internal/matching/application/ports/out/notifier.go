package out

import "context"

// InAppNotification — внутисистемное уведомление пользователю.
type InAppNotification struct {
	UserID            string  `json:"user_id"`
	Title             string  `json:"title"`
	Message           string  `json:"message"`
	NotificationType  string  `json:"notification_type"` // REQUEST | MATCH | STOCK_ALERT | APPROVAL | GENERAL
	Priority          string  `json:"priority"`          // HIGH | MEDIUM | LOW
	RelatedEntityType *string `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string `json:"related_entity_id,omitempty"`
}

// Notifier — интерфейс каналов доставки уведомлений. Каждый канал
// независим: ошибка доставки логируется и не прерывает остальные.
type Notifier interface {
	// SendInApp сохраняет внутрисистемное уведомление и пытается
	// доставить его через WebSocket, если пользователь подключен
	SendInApp(ctx context.Context, n InAppNotification) error

	// SendEmail отправляет письмо на адрес
	SendEmail(ctx context.Context, address, subject, body string) error

	// SendSMS отправляет SMS на номер
	SendSMS(ctx context.Context, phone, message string) error
}
