package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/utils"
)

// StockAlertPgNotifier записывает предупреждение о низком запасе как
// in-app уведомление пользователю госпиталя.
type StockAlertPgNotifier struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewStockAlertPgNotifier создает новый нотификатор низких запасов
func NewStockAlertPgNotifier(pool *pgxpool.Pool, log *logger.Logger) *StockAlertPgNotifier {
	return &StockAlertPgNotifier{
		pool: pool,
		log:  log,
	}
}

// NotifyLowStock сохраняет уведомление STOCK_ALERT для госпиталя
func (n *StockAlertPgNotifier) NotifyLowStock(ctx context.Context, level domain.StockLevel) error {
	var userID string
	err := n.pool.QueryRow(ctx, `SELECT user_id FROM hospitals WHERE id = $1`, level.HospitalID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHospitalNotFound
		}
		return fmt.Errorf("select hospital user: %w", err)
	}

	query := `
		INSERT INTO notifications (
			id, user_id, title, message, notification_type, priority,
			related_entity_type, related_entity_id
		) VALUES ($1, $2, $3, $4, 'STOCK_ALERT', 'HIGH', 'HOSPITAL', $5)
	`
	message := fmt.Sprintf(
		"Blood stock for %s is at %d ml, below the %d ml threshold. Please restock.",
		level.BloodGroup, level.QuantityML, level.MinThreshold,
	)
	_, err = n.pool.Exec(ctx, query,
		utils.NewUUID(),
		userID,
		"Low blood stock",
		message,
		level.HospitalID,
	)
	if err != nil {
		return fmt.Errorf("insert stock alert: %w", err)
	}

	return nil
}
