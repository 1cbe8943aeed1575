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

// DonorPgRepository — PostgreSQL репозиторий для работы с донорами
type DonorPgRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDonorPgRepository создает новый экземпляр репозитория
func NewDonorPgRepository(pool *pgxpool.Pool, log *logger.Logger) *DonorPgRepository {
	return &DonorPgRepository{
		pool: pool,
		log:  log,
	}
}

const donorColumns = `
	d.id, d.user_id, d.full_name, COALESCE(u.email, ''), COALESCE(u.phone, ''),
	d.blood_group, d.latitude, d.longitude, d.weight_kg,
	d.last_donation_date, d.is_available, d.medical_conditions, d.city
`

func scanDonor(row pgx.Row) (*domain.Donor, error) {
	d := &domain.Donor{}
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.FullName,
		&d.Email,
		&d.Phone,
		&d.BloodGroup,
		&d.Latitude,
		&d.Longitude,
		&d.WeightKg,
		&d.LastDonationDate,
		&d.IsAvailable,
		&d.MedicalConditions,
		&d.City,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// FindByBloodGroup возвращает доступных доноров с указанной группой крови
func (r *DonorPgRepository) FindByBloodGroup(ctx context.Context, group domain.BloodGroup) ([]*domain.Donor, error) {
	query := `
		SELECT ` + donorColumns + `
		FROM donors d
		JOIN users u ON u.id = d.user_id
		WHERE d.blood_group = $1 AND d.is_available
	`

	rows, err := db_conn.QuerierFrom(ctx, r.pool).Query(ctx, query, group)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_find_donors_by_group_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("select donors by blood group: %w", err)
	}
	defer rows.Close()

	var donors []*domain.Donor
	for rows.Next() {
		d, err := scanDonor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donors: %w", err)
	}

	return donors, nil
}

// FindByID возвращает донора по ID
func (r *DonorPgRepository) FindByID(ctx context.Context, donorID string) (*domain.Donor, error) {
	query := `
		SELECT ` + donorColumns + `
		FROM donors d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`

	d, err := scanDonor(db_conn.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, donorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDonorNotFound
		}
		return nil, fmt.Errorf("select donor: %w", err)
	}
	return d, nil
}

// FindByUserID возвращает донора по ID пользователя
func (r *DonorPgRepository) FindByUserID(ctx context.Context, userID string) (*domain.Donor, error) {
	query := `
		SELECT ` + donorColumns + `
		FROM donors d
		JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1
	`

	d, err := scanDonor(db_conn.QuerierFrom(ctx, r.pool).QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDonorNotFound
		}
		return nil, fmt.Errorf("select donor by user: %w", err)
	}
	return d, nil
}

// SetAvailability переключает доступность донора
func (r *DonorPgRepository) SetAvailability(ctx context.Context, donorID string, available bool) error {
	query := `
		UPDATE donors
		SET is_available = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query, available, donorID)
	if err != nil {
		r.log.Error(logger.Entry{
			Action:  "db_set_donor_availability_failed",
			Message: err.Error(),
			DonorID: donorID,
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return fmt.Errorf("update donor availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}

// RecordDonation фиксирует дату последней донации донора
func (r *DonorPgRepository) RecordDonation(ctx context.Context, donorID string) error {
	query := `
		UPDATE donors
		SET last_donation_date = CURRENT_DATE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := db_conn.QuerierFrom(ctx, r.pool).Exec(ctx, query, donorID)
	if err != nil {
		return fmt.Errorf("update donor last donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDonorNotFound
	}
	return nil
}
