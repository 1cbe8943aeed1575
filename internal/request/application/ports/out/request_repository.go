package out

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

// RequestRepository — интерфейс репозитория для работы с заявками
type RequestRepository interface {
	// Create создает новую заявку
	Create(ctx context.Context, req *domain.Request) error

	// FindByID возвращает заявку по ID
	FindByID(ctx context.Context, requestID string) (*domain.Request, error)

	// FindByPatientID возвращает заявки пациента, последние первыми
	FindByPatientID(ctx context.Context, patientID string) ([]*domain.Request, error)

	// FindByStatus возвращает заявки со статусом, срочные первыми
	FindByStatus(ctx context.Context, status string, limit int) ([]*domain.Request, error)

	// UpdateStatusIf переводит статус заявки из from в to одним условным
	// UPDATE. false — заявка уже не в статусе from.
	UpdateStatusIf(ctx context.Context, requestID, from, to string) (bool, error)
}
