package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// RecordDonationService — use case фиксации состоявшейся донации
type RecordDonationService struct {
	donorRepo out.DonorRepository
	log       *logger.Logger
}

// NewRecordDonationService создает новый сервис фиксации донации
func NewRecordDonationService(donorRepo out.DonorRepository, log *logger.Logger) *RecordDonationService {
	return &RecordDonationService{
		donorRepo: donorRepo,
		log:       log,
	}
}

// Execute фиксирует донацию текущей датой и перечитывает профиль
func (s *RecordDonationService) Execute(ctx context.Context, input in.RecordDonationInput) (*in.RecordDonationOutput, error) {
	donor, err := s.donorRepo.FindByUserID(ctx, input.DonorUserID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	if err := s.donorRepo.RecordDonation(ctx, donor.ID); err != nil {
		return nil, fmt.Errorf("record donation: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "donation_recorded",
		Message: "donation date updated",
		DonorID: donor.ID,
	})

	updated, err := s.donorRepo.FindByID(ctx, donor.ID)
	if err != nil {
		return nil, fmt.Errorf("reload donor: %w", err)
	}

	return &in.RecordDonationOutput{
		DonorID:          updated.ID,
		LastDonationDate: updated.LastDonationDate,
	}, nil
}
