package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/utils"
)

// RespondToMatchService — use case ответа донора на предложение.
//
// Сервис проверяет, что предложение существует и еще не отвечено, и
// публикует ответ в RabbitMQ. Запись ответа и перевод заявки выполняет
// request-service: он единственный, кто разрешает гонку нескольких
// принявших доноров.
type RespondToMatchService struct {
	donorRepo   out.DonorRepository
	matchReader out.MatchReader
	publisher   out.ResponsePublisher
	log         *logger.Logger
}

// NewRespondToMatchService создает новый сервис ответа донора
func NewRespondToMatchService(
	donorRepo out.DonorRepository,
	matchReader out.MatchReader,
	publisher out.ResponsePublisher,
	log *logger.Logger,
) *RespondToMatchService {
	return &RespondToMatchService{
		donorRepo:   donorRepo,
		matchReader: matchReader,
		publisher:   publisher,
		log:         log,
	}
}

// Execute отправляет ответ донора на предложение по заявке
func (s *RespondToMatchService) Execute(ctx context.Context, input in.RespondToMatchInput) (*in.RespondToMatchOutput, error) {
	response := matchdomain.DonorResponse(input.Response)
	if !matchdomain.ValidResponse(response) {
		return nil, fmt.Errorf("%w: %q", matchdomain.ErrInvalidResponse, input.Response)
	}

	donor, err := s.donorRepo.FindByUserID(ctx, input.DonorUserID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	match, err := s.findMatch(ctx, donor.ID, input.RequestID)
	if err != nil {
		return nil, err
	}
	if match.Response != matchdomain.ResponsePending {
		return nil, matchdomain.ErrMatchAlreadyResolved
	}

	event := out.DonorResponseEvent{
		RequestID:     input.RequestID,
		DonorID:       donor.ID,
		Response:      string(response),
		CorrelationID: utils.NewUUID(),
	}
	if err := s.publisher.PublishDonorResponse(ctx, event); err != nil {
		return nil, fmt.Errorf("publish donor response: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "donor_response_sent",
		Message:   fmt.Sprintf("response=%s", response),
		RequestID: input.RequestID,
		DonorID:   donor.ID,
	})

	return &in.RespondToMatchOutput{
		RequestID: input.RequestID,
		DonorID:   donor.ID,
		Response:  string(response),
		Delivered: true,
	}, nil
}

// findMatch ищет предложение донора по заявке
func (s *RespondToMatchService) findMatch(ctx context.Context, donorID, requestID string) (*matchdomain.Match, error) {
	matches, err := s.matchReader.FindByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	for _, m := range matches {
		if m.RequestID == requestID {
			return m, nil
		}
	}
	return nil, matchdomain.ErrMatchNotFound
}
