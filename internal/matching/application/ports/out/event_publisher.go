package out

import "context"

// MatchEventData — данные события подбора
type MatchEventData struct {
	RequestID      string         `json:"request_id"`
	DonorID        *string        `json:"donor_id,omitempty"`
	Response       string         `json:"response,omitempty"`
	MatchedDonors  int            `json:"matched_donors,omitempty"`
	AdditionalData map[string]any `json:"additional_data,omitempty"`
}

// MatchEventPublisher — интерфейс для публикации событий подбора в RabbitMQ
type MatchEventPublisher interface {
	// PublishMatchEvent публикует событие подбора
	// eventType: DONORS_MATCHED | DONOR_RESPONSE_RECORDED | REQUEST_APPROVED
	PublishMatchEvent(ctx context.Context, eventType string, data MatchEventData) error
}
