package in

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// FindDonorMatchesInput — входные данные для подбора доноров
type FindDonorMatchesInput struct {
	RequestID string `json:"request_id"`
}

// FindDonorMatchesOutput — результат подбора: доноры по убыванию оценки
type FindDonorMatchesOutput struct {
	RequestID string               `json:"request_id"`
	Matches   []domain.RankedDonor `json:"matches"`
}

// FindDonorMatchesUseCase — интерфейс use-case подбора доноров для заявки
type FindDonorMatchesUseCase interface {
	Execute(ctx context.Context, input FindDonorMatchesInput) (*FindDonorMatchesOutput, error)
}
