package out

import "context"

// DonorResponseEvent — ответ донора, отправляемый в request-service через MQ
type DonorResponseEvent struct {
	RequestID     string `json:"request_id"`
	DonorID       string `json:"donor_id"`
	Response      string `json:"response"` // ACCEPTED | REJECTED
	CorrelationID string `json:"correlation_id,omitempty"`
}

// ResponsePublisher публикует ответы доноров в RabbitMQ
type ResponsePublisher interface {
	PublishDonorResponse(ctx context.Context, event DonorResponseEvent) error
}

// StatusEventData — данные события смены статуса донора
type StatusEventData struct {
	DonorID     string `json:"donor_id"`
	IsAvailable bool   `json:"is_available"`
}

// StatusEventPublisher публикует события доступности донора
type StatusEventPublisher interface {
	PublishDonorStatusChanged(ctx context.Context, data StatusEventData) error
}
