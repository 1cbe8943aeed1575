package in

import "context"

// RespondToMatchInput — входные данные для ответа донора на предложение
type RespondToMatchInput struct {
	DonorUserID string `json:"-"` // из JWT
	RequestID   string `json:"request_id"`
	Response    string `json:"response"` // ACCEPTED | REJECTED
}

// RespondToMatchOutput — результат отправки ответа.
// Ответ доставляется в request-service асинхронно через RabbitMQ.
type RespondToMatchOutput struct {
	RequestID string `json:"request_id"`
	DonorID   string `json:"donor_id"`
	Response  string `json:"response"`
	Delivered bool   `json:"delivered"`
}

// RespondToMatchUseCase — интерфейс use-case ответа донора
type RespondToMatchUseCase interface {
	Execute(ctx context.Context, input RespondToMatchInput) (*RespondToMatchOutput, error)
}
