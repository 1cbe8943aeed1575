package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/utils"
)

// UserPgRepository — PostgreSQL репозиторий для работы с пользователями
type UserPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewUserPgRepository создает новый экземпляр репозитория
func NewUserPgRepository(pool *pgxpool.Pool, log *logger.Logger) *UserPgRepository {
	return &UserPgRepository{
		pool: pool,
		log:  log,
	}
}

// Create создает пользователя и профиль роли одной транзакцией
func (r *UserPgRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userQuery := `
		INSERT INTO users (id, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, userQuery,
		user.ID,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email") {
			return domain.ErrUserAlreadyExists
		}
		r.log.Error(logger.Entry{
			Action:  "db_create_user_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("insert user: %w", err)
	}

	if err := r.insertRoleProfile(ctx, tx, user); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// insertRoleProfile создает строку профиля по роли пользователя
func (r *UserPgRepository) insertRoleProfile(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	switch user.Role {
	case domain.RoleDonor:
		query := `
			INSERT INTO donors (id, user_id, full_name, blood_group, latitude, longitude, weight_kg, city, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, query,
			utils.NewUUID(),
			user.ID,
			profileString(user.Profile, "full_name"),
			profileString(user.Profile, "blood_group"),
			profileFloat(user.Profile, "latitude"),
			profileFloat(user.Profile, "longitude"),
			profileFloat(user.Profile, "weight_kg"),
			profileString(user.Profile, "city"),
			user.CreatedAt,
			user.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert donor profile: %w", err)
		}
	case domain.RolePatient:
		query := `
			INSERT INTO patients (id, user_id, full_name, city, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := tx.Exec(ctx, query,
			utils.NewUUID(),
			user.ID,
			profileString(user.Profile, "full_name"),
			profileString(user.Profile, "city"),
			user.CreatedAt,
			user.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert patient profile: %w", err)
		}
	case domain.RoleHospital:
		query := `
			INSERT INTO hospitals (id, user_id, hospital_name, latitude, longitude, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, query,
			utils.NewUUID(),
			user.ID,
			profileString(user.Profile, "hospital_name"),
			profileFloat(user.Profile, "latitude"),
			profileFloat(user.Profile, "longitude"),
			user.CreatedAt,
			user.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert hospital profile: %w", err)
		}
	}
	return nil
}

const userColumns = `id, email, phone, password_hash, role, status, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID находит пользователя по ID
func (r *UserPgRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

// FindByEmail находит пользователя по email
func (r *UserPgRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return user, nil
}

// List возвращает страницу пользователей с фильтрами по роли и статусу
func (r *UserPgRepository) List(ctx context.Context, filters out.ListUsersFilters) ([]*domain.User, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	argIndex := 1

	if filters.Role != "" {
		where = append(where, fmt.Sprintf("role = $%d", argIndex))
		args = append(args, filters.Role)
		argIndex++
	}
	if filters.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIndex, argIndex+1,
	)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return users, total, nil
}

func profileString(profile map[string]interface{}, key string) string {
	if profile == nil {
		return ""
	}
	v, _ := profile[key].(string)
	return v
}

func profileFloat(profile map[string]interface{}, key string) float64 {
	if profile == nil {
		return 0
	}
	switch v := profile[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
