package in

import "context"

// CancelRequestInput — входные данные для отмены заявки
type CancelRequestInput struct {
	RequestID     string `json:"request_id"`
	PatientUserID string `json:"-"` // из JWT, отменить можно только свою заявку
}

// CancelRequestOutput — результат отмены
type CancelRequestOutput struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// CancelRequestUseCase — интерфейс use-case отмены заявки
type CancelRequestUseCase interface {
	Execute(ctx context.Context, input CancelRequestInput) (*CancelRequestOutput, error)
}
