package out

import (
	"context"

	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

// RequestStore — доступ подбора к заявкам.
type RequestStore interface {
	// FindByID возвращает заявку по ID
	FindByID(ctx context.Context, requestID string) (*reqdomain.Request, error)

	// UpdateStatusIf переводит статус заявки из from в to одним условным
	// UPDATE. Возвращает false, если заявка уже не в статусе from —
	// так первый принявший донор выигрывает гонку.
	UpdateStatusIf(ctx context.Context, requestID, from, to string) (bool, error)
}
