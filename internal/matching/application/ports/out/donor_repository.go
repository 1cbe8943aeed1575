package out

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// DonorRepository — интерфейс репозитория для работы с донорами
type DonorRepository interface {
	// FindByBloodGroup возвращает доступных доноров с указанной группой крови
	FindByBloodGroup(ctx context.Context, group domain.BloodGroup) ([]*domain.Donor, error)

	// FindByID возвращает донора по ID
	FindByID(ctx context.Context, donorID string) (*domain.Donor, error)

	// FindByUserID возвращает донора по ID пользователя
	FindByUserID(ctx context.Context, userID string) (*domain.Donor, error)

	// SetAvailability переключает доступность донора
	SetAvailability(ctx context.Context, donorID string, available bool) error
}
