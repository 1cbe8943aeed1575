package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

var dialect = goqu.Dialect("postgres")

// ReportPgRepository — PostgreSQL репозиторий админских отчетов: запасы
// крови, аппараты ИВЛ и сводки откликов доноров. Запросы с динамическими
// фильтрами собираются через goqu.
type ReportPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewReportPgRepository создает новый экземпляр репозитория
func NewReportPgRepository(pool *pgxpool.Pool, log *logger.Logger) *ReportPgRepository {
	return &ReportPgRepository{
		pool: pool,
		log:  log,
	}
}

// ListStock возвращает запасы крови, сначала самые истощенные относительно порога
func (r *ReportPgRepository) ListStock(ctx context.Context, filters out.StockFilters) ([]domain.StockLevel, error) {
	ds := dialect.
		From(goqu.T("blood_stock").As("bs")).
		Join(goqu.T("hospitals").As("h"), goqu.On(goqu.Ex{"h.id": goqu.I("bs.hospital_id")})).
		Select(
			goqu.I("bs.hospital_id"),
			goqu.I("h.hospital_name"),
			goqu.I("bs.blood_group"),
			goqu.I("bs.quantity_ml"),
			goqu.I("bs.min_threshold"),
			goqu.I("bs.updated_at"),
		).
		Order(goqu.L("bs.quantity_ml - bs.min_threshold").Asc(), goqu.I("h.hospital_name").Asc())

	if filters.HospitalID != "" {
		ds = ds.Where(goqu.Ex{"bs.hospital_id": filters.HospitalID})
	}
	if filters.BloodGroup != "" {
		ds = ds.Where(goqu.Ex{"bs.blood_group": filters.BloodGroup})
	}
	if filters.OnlyLow {
		ds = ds.Where(goqu.L("bs.quantity_ml < bs.min_threshold"))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build stock query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_list_stock_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("select blood stock: %w", err)
	}
	defer rows.Close()

	stock := make([]domain.StockLevel, 0)
	for rows.Next() {
		var level domain.StockLevel
		if err := rows.Scan(
			&level.HospitalID,
			&level.HospitalName,
			&level.BloodGroup,
			&level.QuantityML,
			&level.MinThreshold,
			&level.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		stock = append(stock, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blood stock: %w", err)
	}

	return stock, nil
}

// UpsertStock записывает уровень запаса и возвращает итоговую строку
// вместе с названием госпиталя
func (r *ReportPgRepository) UpsertStock(ctx context.Context, level domain.StockLevel) (*domain.StockLevel, error) {
	query := `
		INSERT INTO blood_stock (hospital_id, blood_group, quantity_ml, min_threshold, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (hospital_id, blood_group) DO UPDATE SET
			quantity_ml = EXCLUDED.quantity_ml,
			min_threshold = EXCLUDED.min_threshold,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		level.HospitalID,
		level.BloodGroup,
		level.QuantityML,
		level.MinThreshold,
		level.UpdatedAt,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_upsert_stock_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]interface{}{
				"hospital_id": level.HospitalID,
				"blood_group": level.BloodGroup,
			},
		})
		return nil, fmt.Errorf("upsert blood stock: %w", err)
	}

	nameQuery := `SELECT hospital_name FROM hospitals WHERE id = $1`
	if err := r.pool.QueryRow(ctx, nameQuery, level.HospitalID).Scan(&level.HospitalName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("select hospital name: %w", err)
	}

	return &level, nil
}

// List возвращает аппараты ИВЛ по фильтрам
func (r *ReportPgRepository) List(ctx context.Context, hospitalID, status string) ([]domain.Ventilator, error) {
	ds := dialect.
		From("ventilators").
		Select("id", "hospital_id", "status", "updated_at").
		Order(goqu.I("updated_at").Desc())

	if hospitalID != "" {
		ds = ds.Where(goqu.Ex{"hospital_id": hospitalID})
	}
	if status != "" {
		ds = ds.Where(goqu.Ex{"status": status})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build ventilators query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select ventilators: %w", err)
	}
	defer rows.Close()

	ventilators := make([]domain.Ventilator, 0)
	for rows.Next() {
		var v domain.Ventilator
		if err := rows.Scan(&v.ID, &v.HospitalID, &v.Status, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ventilator: %w", err)
		}
		ventilators = append(ventilators, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ventilators: %w", err)
	}

	return ventilators, nil
}

// UpdateStatus меняет статус аппарата ИВЛ
func (r *ReportPgRepository) UpdateStatus(ctx context.Context, ventilatorID, status string) (*domain.Ventilator, error) {
	query := `
		UPDATE ventilators
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, hospital_id, status, updated_at
	`

	var v domain.Ventilator
	err := r.pool.QueryRow(ctx, query, ventilatorID, status).Scan(&v.ID, &v.HospitalID, &v.Status, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVentilatorNotFound
		}
		r.log.Error(logger.Entry{
			Action:  "db_update_ventilator_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]interface{}{
				"ventilator_id": ventilatorID,
			},
		})
		return nil, fmt.Errorf("update ventilator: %w", err)
	}

	return &v, nil
}

// CountResponses возвращает число связей заявки по каждому ответу донора
func (r *ReportPgRepository) CountResponses(ctx context.Context, requestID string) (map[string]int, error) {
	query := `
		SELECT donor_response, COUNT(*)
		FROM donor_matches
		WHERE request_id = $1
		GROUP BY donor_response
	`

	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("count donor responses: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var response string
		var n int
		if err := rows.Scan(&response, &n); err != nil {
			return nil, fmt.Errorf("scan response count: %w", err)
		}
		counts[response] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate response counts: %w", err)
	}

	return counts, nil
}
