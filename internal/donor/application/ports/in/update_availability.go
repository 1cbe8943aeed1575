package in

import "context"

// UpdateAvailabilityInput — входные данные для переключения доступности
type UpdateAvailabilityInput struct {
	DonorUserID string `json:"-"` // из JWT
	Available   bool   `json:"available"`
}

// UpdateAvailabilityOutput — результат переключения
type UpdateAvailabilityOutput struct {
	DonorID     string `json:"donor_id"`
	IsAvailable bool   `json:"is_available"`
}

// UpdateAvailabilityUseCase — интерфейс use-case переключения доступности.
// Недоступный донор не попадает в подбор по новым заявкам.
type UpdateAvailabilityUseCase interface {
	Execute(ctx context.Context, input UpdateAvailabilityInput) (*UpdateAvailabilityOutput, error)
}
