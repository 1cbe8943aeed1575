package in

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

// ListMyRequestsInput — входные данные для списка заявок пациента
type ListMyRequestsInput struct {
	PatientUserID string `json:"-"` // из JWT
}

// ListMyRequestsOutput — заявки пациента, последние первыми
type ListMyRequestsOutput struct {
	Requests []*domain.Request `json:"requests"`
}

// ListMyRequestsUseCase — интерфейс use-case списка заявок пациента
type ListMyRequestsUseCase interface {
	Execute(ctx context.Context, input ListMyRequestsInput) (*ListMyRequestsOutput, error)
}

// GetRequestInput — входные данные для чтения одной заявки
type GetRequestInput struct {
	RequestID string `json:"request_id"`
}

// GetRequestOutput — заявка со связанными донорами
type GetRequestOutput struct {
	Request *domain.Request `json:"request"`
}

// GetRequestUseCase — интерфейс use-case чтения заявки
type GetRequestUseCase interface {
	Execute(ctx context.Context, input GetRequestInput) (*GetRequestOutput, error)
}
