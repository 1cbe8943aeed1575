package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// ListMyMatchesService — use case списка предложений донора
type ListMyMatchesService struct {
	donorRepo   out.DonorRepository
	matchReader out.MatchReader
	requests    out.RequestReader
	log         *logger.Logger
}

// NewListMyMatchesService создает новый сервис списка предложений
func NewListMyMatchesService(
	donorRepo out.DonorRepository,
	matchReader out.MatchReader,
	requests out.RequestReader,
	log *logger.Logger,
) *ListMyMatchesService {
	return &ListMyMatchesService{
		donorRepo:   donorRepo,
		matchReader: matchReader,
		requests:    requests,
		log:         log,
	}
}

// Execute возвращает предложения донора, обогащенные данными заявок.
// Заявка, которую не удалось прочитать, отдается без обогащения —
// список не должен падать из-за одной битой записи.
func (s *ListMyMatchesService) Execute(ctx context.Context, input in.ListMyMatchesInput) (*in.ListMyMatchesOutput, error) {
	donor, err := s.donorRepo.FindByUserID(ctx, input.DonorUserID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	matches, err := s.matchReader.FindByDonor(ctx, donor.ID)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	views := make([]in.MatchView, 0, len(matches))
	for _, m := range matches {
		view := in.MatchView{
			RequestID:    m.RequestID,
			Response:     string(m.Response),
			Score:        m.Score,
			DistanceKm:   m.DistanceKm,
			ResponseTime: m.ResponseTime,
			CreatedAt:    m.CreatedAt,
		}

		req, err := s.requests.FindByID(ctx, m.RequestID)
		if err != nil {
			s.log.Warn(logger.Entry{
				Action:    "enrich_match_failed",
				Message:   err.Error(),
				RequestID: m.RequestID,
				DonorID:   donor.ID,
			})
		} else {
			view.RequestType = req.RequestType
			view.Urgency = req.Urgency
			view.Status = req.Status
			if req.BloodGroup != nil {
				view.BloodGroup = req.BloodGroup.Symbol()
			}
		}

		views = append(views, view)
	}

	return &in.ListMyMatchesOutput{Matches: views}, nil
}
