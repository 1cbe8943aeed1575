package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/config"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// FindDonorMatchesService — use case подбора доноров: совместимость,
// годность, радиус, оценка, сортировка.
type FindDonorMatchesService struct {
	requestStore out.RequestStore
	donorRepo    out.DonorRepository
	patientRepo  out.PatientRepository
	hospitalRepo out.HospitalRepository
	cfg          config.MatchingConfig
	log          *logger.Logger
}

// NewFindDonorMatchesService создает новый сервис подбора доноров
func NewFindDonorMatchesService(
	requestStore out.RequestStore,
	donorRepo out.DonorRepository,
	patientRepo out.PatientRepository,
	hospitalRepo out.HospitalRepository,
	cfg config.MatchingConfig,
	log *logger.Logger,
) *FindDonorMatchesService {
	return &FindDonorMatchesService{
		requestStore: requestStore,
		donorRepo:    donorRepo,
		patientRepo:  patientRepo,
		hospitalRepo: hospitalRepo,
		cfg:          cfg,
		log:          log,
	}
}

// Execute подбирает доноров для заявки и возвращает их по убыванию оценки
func (s *FindDonorMatchesService) Execute(ctx context.Context, input in.FindDonorMatchesInput) (*in.FindDonorMatchesOutput, error) {
	req, err := s.requestStore.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}

	if !req.NeedsDonorMatching() {
		return nil, domain.ErrInvalidDonationType
	}
	if req.BloodGroup == nil || !req.BloodGroup.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}

	donationType, err := req.DonationType()
	if err != nil {
		return nil, err
	}

	// Заявка без пациента — битые данные, подбор закрывается пустым списком
	if _, err := s.patientRepo.FindByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, domain.ErrPatientNotFound) {
			s.log.Warn(logger.Entry{
				Action:    "match_patient_unresolved",
				Message:   fmt.Sprintf("patient %s for request %s not found, returning empty match list", req.PatientID, req.ID),
				RequestID: req.ID,
			})
			return &in.FindDonorMatchesOutput{RequestID: req.ID, Matches: nil}, nil
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}

	originLat, originLon, ok, err := s.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &in.FindDonorMatchesOutput{RequestID: req.ID, Matches: nil}, nil
	}

	requested := *req.BloodGroup
	groups := domain.CompatibleDonorGroups(requested, donationType)

	// Ошибка по одной группе не срывает весь подбор: работаем
	// с частичным набором кандидатов
	var candidates []*domain.Donor
	for _, g := range groups {
		donors, err := s.donorRepo.FindByBloodGroup(ctx, g)
		if err != nil {
			s.log.Error(logger.Entry{
				Action:    "fetch_donor_bucket_failed",
				Message:   fmt.Sprintf("group %s: %v", g, err),
				RequestID: req.ID,
				Error:     &logger.ErrObj{Msg: err.Error()},
			})
			continue
		}
		candidates = append(candidates, donors...)
	}

	now := time.Now().UTC()
	matches := make([]domain.RankedDonor, 0, len(candidates))

	for _, d := range candidates {
		if !d.EligibleFor(donationType, now) {
			continue
		}

		// Донор без геопозиции считается локальным
		distance := 0.0
		if d.HasLocation() {
			distance = domain.HaversineKm(originLat, originLon, d.Latitude, d.Longitude)
			if distance > s.cfg.SearchRadiusKm {
				continue
			}
		}

		matches = append(matches, domain.RankedDonor{
			Donor:      d,
			Score:      domain.ScoreDonor(d, requested, donationType, distance, now),
			DistanceKm: distance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	s.log.Info(logger.Entry{
		Action:    "donor_matches_found",
		Message:   fmt.Sprintf("request=%s group=%s candidates=%d matched=%d", req.ID, requested, len(candidates), len(matches)),
		RequestID: req.ID,
		Additional: map[string]any{
			"donation_type": string(donationType),
			"groups":        len(groups),
		},
	})

	return &in.FindDonorMatchesOutput{RequestID: req.ID, Matches: matches}, nil
}

// resolveOrigin возвращает точку отсчета для расчета расстояний: координаты
// госпиталя заявки либо координату по умолчанию, если госпиталь не указан
// или его геопозиция не заполнена. Запасной вариант логируется как проблема
// качества данных. Несуществующий госпиталь закрывает подбор (ok=false).
func (s *FindDonorMatchesService) resolveOrigin(ctx context.Context, req *reqdomain.Request) (lat, lon float64, ok bool, err error) {
	if req.HospitalID == nil {
		s.log.Warn(logger.Entry{
			Action:    "hospital_location_fallback",
			Message:   "request has no hospital, using default coordinate",
			RequestID: req.ID,
		})
		return s.cfg.DefaultLat, s.cfg.DefaultLon, true, nil
	}

	h, err := s.hospitalRepo.FindByID(ctx, *req.HospitalID)
	if err != nil {
		if errors.Is(err, domain.ErrHospitalNotFound) {
			s.log.Warn(logger.Entry{
				Action:    "match_hospital_unresolved",
				Message:   fmt.Sprintf("hospital %s for request %s not found, returning empty match list", *req.HospitalID, req.ID),
				RequestID: req.ID,
			})
			return 0, 0, false, nil
		}
		return 0, 0, false, fmt.Errorf("find hospital: %w", err)
	}

	if !h.HasLocation() {
		s.log.Warn(logger.Entry{
			Action:    "hospital_location_fallback",
			Message:   fmt.Sprintf("hospital %s has no usable location, using default coordinate", h.ID),
			RequestID: req.ID,
		})
		return s.cfg.DefaultLat, s.cfg.DefaultLon, true, nil
	}

	return h.Latitude, h.Longitude, true, nil
}
