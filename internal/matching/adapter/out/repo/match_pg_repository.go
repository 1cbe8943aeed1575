package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// MatchPgRepository — PostgreSQL репозиторий связей заявка-донор
type MatchPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewMatchPgRepository создает новый экземпляр репозитория
func NewMatchPgRepository(pool *pgxpool.Pool, log *logger.Logger) *MatchPgRepository {
	return &MatchPgRepository{
		pool: pool,
		log:  log,
	}
}

// Insert сохраняет новую связь. Составной первичный ключ гарантирует
// одну запись на пару (request_id, donor_id); повторная вставка
// не делает ничего и возвращает false.
func (r *MatchPgRepository) Insert(ctx context.Context, match *domain.Match) (bool, error) {
	query := `
		INSERT INTO donor_matches (request_id, donor_id, match_score, distance_km, donor_response, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (request_id, donor_id) DO NOTHING
	`

	tag, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		match.RequestID,
		match.DonorID,
		match.Score,
		match.DistanceKm,
		match.Response,
		match.CreatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_insert_match_failed",
			Message:   err.Error(),
			RequestID: match.RequestID,
			DonorID:   match.DonorID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return false, fmt.Errorf("insert donor match: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateResponse записывает ответ донора условным UPDATE: только
// PENDING-связь можно изменить. false — ответа не было или он уже записан.
func (r *MatchPgRepository) UpdateResponse(ctx context.Context, requestID, donorID string, response domain.DonorResponse, respondedAt time.Time) (bool, error) {
	query := `
		UPDATE donor_matches
		SET donor_response = $1, response_time = $2
		WHERE request_id = $3 AND donor_id = $4 AND donor_response = 'PENDING'
	`

	tag, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query, response, respondedAt, requestID, donorID)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:    "db_update_match_response_failed",
			Message:   err.Error(),
			RequestID: requestID,
			DonorID:   donorID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
		return false, fmt.Errorf("update donor match response: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanMatches(rows pgx.Rows) ([]*domain.Match, error) {
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		m := &domain.Match{}
		if err := rows.Scan(
			&m.RequestID,
			&m.DonorID,
			&m.Score,
			&m.DistanceKm,
			&m.Response,
			&m.ResponseTime,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan donor match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donor matches: %w", err)
	}
	return matches, nil
}

// FindByRequest возвращает связи заявки по убыванию оценки
func (r *MatchPgRepository) FindByRequest(ctx context.Context, requestID string) ([]*domain.Match, error) {
	query := `
		SELECT request_id, donor_id, match_score, distance_km, donor_response, response_time, created_at
		FROM donor_matches
		WHERE request_id = $1
		ORDER BY match_score DESC
	`

	rows, err := db_conn.QuerierFrom(ctx, r.pool).Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("select matches by request: %w", err)
	}
	return scanMatches(rows)
}

// FindByDonor возвращает связи донора, последние первыми
func (r *MatchPgRepository) FindByDonor(ctx context.Context, donorID string) ([]*domain.Match, error) {
	query := `
		SELECT request_id, donor_id, match_score, distance_km, donor_response, response_time, created_at
		FROM donor_matches
		WHERE donor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db_conn.QuerierFrom(ctx, r.pool).Query(ctx, query, donorID)
	if err != nil {
		return nil, fmt.Errorf("select matches by donor: %w", err)
	}
	return scanMatches(rows)
}
