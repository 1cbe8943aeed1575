package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	db_conn "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/db"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/utils"
)

// NotificationPgRepository — PostgreSQL хранилище внутрисистемных
// уведомлений. Вставка подхватывает транзакцию из контекста, поэтому
// откат снимает и уведомления.
type NotificationPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewNotificationPgRepository создает новый экземпляр репозитория
func NewNotificationPgRepository(pool *pgxpool.Pool, log *logger.Logger) *NotificationPgRepository {
	return &NotificationPgRepository{pool: pool, log: log}
}

// Insert сохраняет уведомление и возвращает его ID
func (r *NotificationPgRepository) Insert(ctx context.Context, n out.InAppNotification) (string, error) {
	query := `
		INSERT INTO notifications (id, user_id, title, message, notification_type, priority,
		                           related_entity_type, related_entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	id := utils.NewUUID()
	_, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query,
		id,
		n.UserID,
		n.Title,
		n.Message,
		n.NotificationType,
		n.Priority,
		n.RelatedEntityType,
		n.RelatedEntityID,
		time.Now().UTC(),
	)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_insert_notification_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return "", fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// MarkRead помечает уведомление пользователя прочитанным
func (r *NotificationPgRepository) MarkRead(ctx context.Context, notificationID, userID string) (bool, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND user_id = $2 AND NOT is_read
	`

	tag, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query, notificationID, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListUnread возвращает непрочитанные уведомления пользователя
func (r *NotificationPgRepository) ListUnread(ctx context.Context, userID string, limit int) ([]out.InAppNotification, error) {
	query := `
		SELECT user_id, title, message, notification_type, priority, related_entity_type, related_entity_id
		FROM notifications
		WHERE user_id = $1 AND NOT is_read
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db_conn.QuerierFrom(ctx, r.pool).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select unread notifications: %w", err)
	}
	defer rows.Close()

	var res []out.InAppNotification
	for rows.Next() {
		var n out.InAppNotification
		if err := rows.Scan(&n.UserID, &n.Title, &n.Message, &n.NotificationType, &n.Priority, &n.RelatedEntityType, &n.RelatedEntityID); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return res, nil
}
