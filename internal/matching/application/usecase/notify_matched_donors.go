package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// NotifyMatchedDonorsService — use case уведомления топ-K доноров по заявке.
// Сначала сохраняет связи, потом рассылает уведомления: доставка никогда
// не держит персистентность.
type NotifyMatchedDonorsService struct {
	finder    in.FindDonorMatchesUseCase
	matchRepo out.MatchRepository
	notifier  out.Notifier
	publisher out.MatchEventPublisher
	topDonors int
	log       *logger.Logger
}

// NewNotifyMatchedDonorsService создает новый сервис уведомления доноров
func NewNotifyMatchedDonorsService(
	finder in.FindDonorMatchesUseCase,
	matchRepo out.MatchRepository,
	notifier out.Notifier,
	publisher out.MatchEventPublisher,
	topDonors int,
	log *logger.Logger,
) *NotifyMatchedDonorsService {
	return &NotifyMatchedDonorsService{
		finder:    finder,
		matchRepo: matchRepo,
		notifier:  notifier,
		publisher: publisher,
		topDonors: topDonors,
		log:       log,
	}
}

// Execute подбирает доноров, сохраняет топ-K связей и рассылает уведомления.
// Повторный вызов для той же заявки не создает дублей и не шлет повторно.
func (s *NotifyMatchedDonorsService) Execute(ctx context.Context, input in.NotifyMatchedDonorsInput) (*in.NotifyMatchedDonorsOutput, error) {
	found, err := s.finder.Execute(ctx, in.FindDonorMatchesInput{RequestID: input.RequestID})
	if err != nil {
		return nil, fmt.Errorf("find donor matches: %w", err)
	}

	top := found.Matches
	if len(top) > s.topDonors {
		top = top[:s.topDonors]
	}

	notified := 0
	for _, m := range top {
		match := &domain.Match{
			RequestID:  input.RequestID,
			DonorID:    m.Donor.ID,
			Score:      m.Score,
			DistanceKm: m.DistanceKm,
			Response:   domain.ResponsePending,
			CreatedAt:  time.Now().UTC(),
		}

		inserted, err := s.matchRepo.Insert(ctx, match)
		if err != nil {
			s.log.Error(logger.Entry{
				Action:    "persist_match_failed",
				Message:   err.Error(),
				RequestID: input.RequestID,
				DonorID:   m.Donor.ID,
				Error:     &logger.ErrObj{Msg: err.Error()},
			})
			continue
		}
		if !inserted {
			// Донор уже уведомлен предыдущим вызовом
			continue
		}

		s.dispatchToDonor(ctx, input.RequestID, m)
		notified++
	}

	if notified > 0 {
		// Не возвращаем ошибку — событие не критично для результата
		if err := s.publisher.PublishMatchEvent(ctx, "DONORS_MATCHED", out.MatchEventData{
			RequestID:     input.RequestID,
			MatchedDonors: notified,
		}); err != nil {
			s.log.Error(logger.Entry{
				Action:    "publish_donors_matched_failed",
				Message:   err.Error(),
				RequestID: input.RequestID,
				Error:     &logger.ErrObj{Msg: err.Error()},
			})
		}
	}

	s.log.Info(logger.Entry{
		Action:    "matched_donors_notified",
		Message:   fmt.Sprintf("request=%s matched=%d notified_now=%d", input.RequestID, len(found.Matches), notified),
		RequestID: input.RequestID,
	})

	return &in.NotifyMatchedDonorsOutput{
		RequestID:     input.RequestID,
		MatchedDonors: len(found.Matches),
		NotifiedNow:   notified,
	}, nil
}

// dispatchToDonor шлет три независимых уведомления донору. Каналы
// отправляются параллельно; сбой одного не мешает остальным.
func (s *NotifyMatchedDonorsService) dispatchToDonor(ctx context.Context, requestID string, m domain.RankedDonor) {
	d := m.Donor
	entityType := "request"

	title := "Donation request"
	body := fmt.Sprintf("You are matched for a donation request (%.1f km away). Please accept or reject it.", m.DistanceKm)

	var wg sync.WaitGroup
	send := func(channel string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.log.Warn(logger.Entry{
					Action:    "donor_notification_failed",
					Message:   fmt.Sprintf("channel=%s: %v", channel, err),
					RequestID: requestID,
					DonorID:   d.ID,
				})
			}
		}()
	}

	send("in_app", func() error {
		return s.notifier.SendInApp(ctx, out.InAppNotification{
			UserID:            d.UserID,
			Title:             title,
			Message:           body,
			NotificationType:  "MATCH",
			Priority:          "HIGH",
			RelatedEntityType: &entityType,
			RelatedEntityID:   &requestID,
		})
	})
	send("email", func() error {
		return s.notifier.SendEmail(ctx, d.Email, title, body)
	})
	send("sms", func() error {
		return s.notifier.SendSMS(ctx, d.Phone, body)
	})

	wg.Wait()
}
