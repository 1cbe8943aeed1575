package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// UpdateAvailabilityService — use case переключения доступности донора
type UpdateAvailabilityService struct {
	donorRepo out.DonorRepository
	statusPub out.StatusEventPublisher
	log       *logger.Logger
}

// NewUpdateAvailabilityService создает новый сервис переключения доступности
func NewUpdateAvailabilityService(
	donorRepo out.DonorRepository,
	statusPub out.StatusEventPublisher,
	log *logger.Logger,
) *UpdateAvailabilityService {
	return &UpdateAvailabilityService{
		donorRepo: donorRepo,
		statusPub: statusPub,
		log:       log,
	}
}

// Execute переключает доступность донора для подбора
func (s *UpdateAvailabilityService) Execute(ctx context.Context, input in.UpdateAvailabilityInput) (*in.UpdateAvailabilityOutput, error) {
	donor, err := s.donorRepo.FindByUserID(ctx, input.DonorUserID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	if donor.IsAvailable != input.Available {
		if err := s.donorRepo.SetAvailability(ctx, donor.ID, input.Available); err != nil {
			return nil, fmt.Errorf("set availability: %w", err)
		}
	}

	s.log.Info(logger.Entry{
		Action:  "donor_availability_updated",
		Message: fmt.Sprintf("available=%t", input.Available),
		DonorID: donor.ID,
	})

	// Не возвращаем ошибку — событие не критично для результата
	if err := s.statusPub.PublishDonorStatusChanged(ctx, out.StatusEventData{
		DonorID:     donor.ID,
		IsAvailable: input.Available,
	}); err != nil {
		s.log.Error(logger.Entry{
			Action:  "publish_donor_status_failed",
			Message: err.Error(),
			DonorID: donor.ID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	return &in.UpdateAvailabilityOutput{
		DonorID:     donor.ID,
		IsAvailable: input.Available,
	}, nil
}
