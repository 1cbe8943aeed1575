package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// RequestPgRepository — PostgreSQL репозиторий для работы с заявками.
// Реализует и контракт подбора: FindByID + UpdateStatusIf.
type RequestPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewRequestPgRepository создает новый экземпляр репозитория
func NewRequestPgRepository(pool *pgxpool.Pool, log *logger.Logger) *RequestPgRepository {
	return &RequestPgRepository{
		pool: pool,
		log:  log,
	}
}

const requestColumns = `
	id, patient_id, hospital_id, request_type, blood_group, quantity_ml,
	urgency, required_by, status, reason, notes, created_at, updated_at
`

func scanRequest(row pgx.Row) (*domain.Request, error) {
	req := &domain.Request{}
	err := row.Scan(
		&req.ID,
		&req.PatientID,
		&req.HospitalID,
		&req.RequestType,
		&req.BloodGroup,
		&req.QuantityML,
		&req.Urgency,
		&req.RequiredBy,
		&req.Status,
		&req.Reason,
		&req.Notes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create создает новую заявку
func (r *RequestPgRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `
		INSERT INTO requests (
			id, patient_id, hospital_id, request_type, blood_group, quantity_ml,
			urgency, required_by, status, reason, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		req.ID,
		req.PatientID,
		req.HospitalID,
		req.RequestType,
		req.BloodGroup,
		req.QuantityML,
		req.Urgency,
		req.RequiredBy,
		req.Status,
		req.Reason,
		req.Notes,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_create_request_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert request: %w", err)
	}

	return nil
}

// FindByID возвращает заявку по ID
func (r *RequestPgRepository) FindByID(ctx context.Context, requestID string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	req, err := scanRequest(db_conn.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("select request: %w", err)
	}
	return req, nil
}

func scanRequests(rows pgx.Rows) ([]*domain.Request, error) {
	defer rows.Close()

	var requests []*domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return requests, nil
}

// FindByPatientID возвращает заявки пациента, последние первыми
func (r *RequestPgRepository) FindByPatientID(ctx context.Context, patientID string) ([]*domain.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db_conn.QuerierFrom(ctx, r.pool).Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("select requests by patient: %w", err)
	}
	return scanRequests(rows)
}

// FindByStatus возвращает заявки со статусом, срочные первыми
func (r *RequestPgRepository) FindByStatus(ctx context.Context, status string, limit int) ([]*domain.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM requests
		WHERE status = $1
		ORDER BY CASE urgency
			WHEN 'CRITICAL' THEN 0
			WHEN 'URGENT' THEN 1
			ELSE 2
		END, created_at
		LIMIT $2
	`

	rows, err := db_conn.QuerierFrom(ctx, r.pool).Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("select requests by status: %w", err)
	}
	return scanRequests(rows)
}

// UpdateStatusIf переводит статус заявки условным UPDATE: запись меняется
// только если текущий статус равен from. Так гонка конкурентных переходов
// разрешается на уровне БД.
func (r *RequestPgRepository) UpdateStatusIf(ctx context.Context, requestID, from, to string) (bool, error) {
	query := `
		UPDATE requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query, to, requestID, from)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_update_request_status_failed",
			Message:   err.Error(),
			RequestID: requestID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return false, fmt.Errorf("update request status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
