package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// PatientPgRepository — PostgreSQL репозиторий пациентов
type PatientPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewPatientPgRepository создает новый экземпляр репозитория
func NewPatientPgRepository(pool *pgxpool.Pool, log *logger.Logger) *PatientPgRepository {
	return &PatientPgRepository{pool: pool, log: log}
}

const patientQuery = `
	SELECT p.id, p.user_id, p.full_name, COALESCE(u.email, ''), COALESCE(u.phone, ''), p.city
	FROM patients p
	JOIN users u ON u.id = p.user_id
`

func scanPatient(row pgx.Row) (*domain.Patient, error) {
	p := &domain.Patient{}
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Phone, &p.City)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID возвращает пациента по ID
func (r *PatientPgRepository) FindByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	p, err := scanPatient(db_conn.QuerierFrom(ctx, r.pool).QueryRow(ctx, patientQuery+` WHERE p.id = $1`, patientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("select patient: %w", err)
	}
	return p, nil
}

// FindByUserID возвращает пациента по ID пользователя
func (r *PatientPgRepository) FindByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	p, err := scanPatient(db_conn.QuerierFrom(ctx, r.pool).QueryRow(ctx, patientQuery+` WHERE p.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("select patient by user: %w", err)
	}
	return p, nil
}

// HospitalPgRepository — PostgreSQL репозиторий госпиталей
type HospitalPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewHospitalPgRepository создает новый экземпляр репозитория
func NewHospitalPgRepository(pool *pgxpool.Pool, log *logger.Logger) *HospitalPgRepository {
	return &HospitalPgRepository{pool: pool, log: log}
}

// FindByID возвращает госпиталь по ID
func (r *HospitalPgRepository) FindByID(ctx context.Context, hospitalID string) (*domain.Hospital, error) {
	query := `
		SELECT h.id, h.user_id, h.hospital_name, COALESCE(u.email, ''), COALESCE(u.phone, ''),
		       h.latitude, h.longitude, h.is_verified
		FROM hospitals h
		JOIN users u ON u.id = h.user_id
		WHERE h.id = $1
	`

	h := &domain.Hospital{}
	err := db_conn.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, hospitalID).Scan(
		&h.ID,
		&h.UserID,
		&h.HospitalName,
		&h.Email,
		&h.Phone,
		&h.Latitude,
		&h.Longitude,
		&h.IsVerified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("select hospital: %w", err)
	}
	return h, nil
}
