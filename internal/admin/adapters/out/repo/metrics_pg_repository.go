package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// MetricsPgRepository — агрегированные метрики для обзора системы
type MetricsPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewMetricsPgRepository создает новый экземпляр репозитория
func NewMetricsPgRepository(pool *pgxpool.Pool, log *logger.Logger) *MetricsPgRepository {
	return &MetricsPgRepository{
		pool: pool,
		log:  log,
	}
}

// GetSystemMetrics возвращает сводные метрики одним запросом
func (r *MetricsPgRepository) GetSystemMetrics(ctx context.Context) (*in.SystemMetrics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM requests WHERE status IN ('PENDING', 'APPROVED')),
			(SELECT COUNT(*) FROM requests WHERE urgency = 'CRITICAL' AND status IN ('PENDING', 'APPROVED')),
			(SELECT COUNT(*) FROM requests WHERE created_at >= CURRENT_DATE),
			(SELECT COUNT(*) FROM donors),
			(SELECT COUNT(*) FROM donors WHERE is_available),
			(SELECT COUNT(*) FROM donor_matches),
			(SELECT COUNT(*) FROM donor_matches WHERE donor_response = 'ACCEPTED'),
			(SELECT COUNT(*) FROM blood_stock WHERE quantity_ml < min_threshold),
			(SELECT COUNT(*) FROM ventilators WHERE status = 'AVAILABLE'),
			(SELECT COUNT(*) FROM ventilators WHERE status = 'IN_USE'),
			(SELECT COUNT(*) FROM ventilators WHERE status = 'MAINTENANCE'),
			(SELECT COUNT(*) FROM notifications WHERE NOT is_read)
	`

	metrics := &in.SystemMetrics{}
	err := r.pool.QueryRow(ctx, query).Scan(
		&metrics.OpenRequests,
		&metrics.CriticalRequests,
		&metrics.RequestsToday,
		&metrics.TotalDonors,
		&metrics.AvailableDonors,
		&metrics.MatchesTotal,
		&metrics.MatchesAccepted,
		&metrics.LowStockEntries,
		&metrics.VentilatorsFree,
		&metrics.VentilatorsInUse,
		&metrics.VentilatorsDown,
		&metrics.UnreadNotifications,
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_system_metrics_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("select system metrics: %w", err)
	}

	if metrics.MatchesTotal > 0 {
		metrics.AcceptanceRate = float64(metrics.MatchesAccepted) / float64(metrics.MatchesTotal)
	}

	return metrics, nil
}

// GetRequestsByStatus возвращает распределение заявок по статусам
func (r *MetricsPgRepository) GetRequestsByStatus(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT status, COUNT(*) FROM requests GROUP BY status`)
}

// GetRequestsByType возвращает распределение заявок по видам
func (r *MetricsPgRepository) GetRequestsByType(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT request_type, COUNT(*) FROM requests GROUP BY request_type`)
}

// GetDonorDistribution возвращает распределение доступных доноров по группам крови
func (r *MetricsPgRepository) GetDonorDistribution(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT blood_group, COUNT(*) FROM donors WHERE is_available GROUP BY blood_group`)
}

func (r *MetricsPgRepository) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("group count: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan group count: %w", err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group counts: %w", err)
	}

	return counts, nil
}
