package domain

import "time"

// RequestEvent — событие заявки, которое отправляется в RabbitMQ.
type RequestEvent struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	EventType string    `json:"event_type"`
	EventData any       `json:"event_data"`
	CreatedAt time.Time `json:"created_at"`
}
