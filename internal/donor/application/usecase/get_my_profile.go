package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/user"
)

// GetMyProfileService — use case чтения своего профиля донора
type GetMyProfileService struct {
	donorRepo out.DonorRepository
	users     user.Repository
	log       *logger.Logger
}

// NewGetMyProfileService создает новый сервис чтения профиля
func NewGetMyProfileService(donorRepo out.DonorRepository, users user.Repository, log *logger.Logger) *GetMyProfileService {
	return &GetMyProfileService{
		donorRepo: donorRepo,
		users:     users,
		log:       log,
	}
}

// Execute возвращает профиль донора по ID пользователя из JWT.
// Данные учетной записи (email, телефон, статус) — best-effort: их
// отсутствие не скрывает сам профиль.
func (s *GetMyProfileService) Execute(ctx context.Context, input in.GetMyProfileInput) (*in.GetMyProfileOutput, error) {
	donor, err := s.donorRepo.FindByUserID(ctx, input.DonorUserID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	output := &in.GetMyProfileOutput{Donor: donor}

	account, err := s.users.FindByID(ctx, input.DonorUserID)
	if err != nil {
		s.log.Warn(logger.Entry{
			Action:  "load_account_failed",
			Message: err.Error(),
			DonorID: donor.ID,
		})
		return output, nil
	}

	output.Email = account.Email
	output.Phone = account.Phone
	output.AccountStatus = account.Status

	return output, nil
}
