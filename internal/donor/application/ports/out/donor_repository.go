package out

import (
	"context"

	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// DonorRepository — интерфейс репозитория донорского контекста.
// Реализуется тем же pg-репозиторием, что и в контексте подбора.
type DonorRepository interface {
	// FindByID возвращает донора по ID
	FindByID(ctx context.Context, donorID string) (*matchdomain.Donor, error)

	// FindByUserID возвращает донора по ID пользователя
	FindByUserID(ctx context.Context, userID string) (*matchdomain.Donor, error)

	// SetAvailability переключает доступность донора
	SetAvailability(ctx context.Context, donorID string, available bool) error

	// RecordDonation фиксирует состоявшуюся донацию текущей датой
	RecordDonation(ctx context.Context, donorID string) error
}
