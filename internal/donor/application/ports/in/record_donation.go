package in

import (
	"context"
	"time"

	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// RecordDonationInput — входные данные для фиксации состоявшейся донации
type RecordDonationInput struct {
	DonorUserID string `json:"-"` // из JWT
}

// RecordDonationOutput — результат фиксации
type RecordDonationOutput struct {
	DonorID          string     `json:"donor_id"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

// RecordDonationUseCase — интерфейс use-case фиксации донации.
// После донации окно годности отсчитывается заново.
type RecordDonationUseCase interface {
	Execute(ctx context.Context, input RecordDonationInput) (*RecordDonationOutput, error)
}

// GetMyProfileInput — входные данные для чтения своего профиля
type GetMyProfileInput struct {
	DonorUserID string `json:"-"` // из JWT
}

// GetMyProfileOutput — профиль донора вместе с данными учетной записи
type GetMyProfileOutput struct {
	Donor         *matchdomain.Donor `json:"donor"`
	Email         string             `json:"email,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	AccountStatus string             `json:"account_status,omitempty"`
}

// GetMyProfileUseCase — интерфейс use-case чтения своего профиля
type GetMyProfileUseCase interface {
	Execute(ctx context.Context, input GetMyProfileInput) (*GetMyProfileOutput, error)
}
