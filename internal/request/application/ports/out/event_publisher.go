package out

import "context"

// RequestEventData — данные события заявки
type RequestEventData struct {
	RequestID      string         `json:"request_id"`
	PatientID      string         `json:"patient_id"`
	HospitalID     *string        `json:"hospital_id,omitempty"`
	RequestType    string         `json:"request_type"`
	BloodGroup     string         `json:"blood_group,omitempty"`
	Urgency        string         `json:"urgency"`
	Status         string         `json:"status"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// EventPublisher — интерфейс для публикации событий заявок в RabbitMQ
type EventPublisher interface {
	// PublishRequestEvent публикует событие заявки
	// eventType: REQUEST_CREATED | REQUEST_CANCELLED | REQUEST_FULFILLED
	PublishRequestEvent(ctx context.Context, eventType string, data RequestEventData) error
}
