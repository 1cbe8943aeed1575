package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/utils"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CreateUserService реализует CreateUserUseCase
type CreateUserService struct {
	userRepo out.UserRepository
	log      *logger.Logger
}

// NewCreateUserService создает новый сервис создания пользователя
func NewCreateUserService(userRepo out.UserRepository, log *logger.Logger) *CreateUserService {
	return &CreateUserService{
		userRepo: userRepo,
		log:      log,
	}
}

// Execute создает нового пользователя вместе с профилем роли
func (s *CreateUserService) Execute(ctx context.Context, input in.CreateUserInput) (*in.CreateUserOutput, error) {
	// Валидация email
	if !emailRegex.MatchString(input.Email) {
		return nil, domain.ErrInvalidEmail
	}

	// Проверка уникальности email
	existingUser, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	// Админ создает доноров, пациентов и госпитали; других админов — нет
	if input.Role != domain.RoleDonor && input.Role != domain.RolePatient && input.Role != domain.RoleHospital {
		return nil, domain.ErrInvalidRole
	}

	if err := validateProfile(input.Role, input.Profile); err != nil {
		return nil, err
	}

	// Валидация пароля
	if len(input.Password) < 8 {
		return nil, domain.ErrPasswordTooShort
	}

	// Хешируем пароль
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "hash_password_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Устанавливаем статус (по умолчанию ACTIVE)
	status := input.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !domain.IsValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           utils.NewUUID(),
		Email:        input.Email,
		Phone:        input.Phone,
		Role:         input.Role,
		Status:       status,
		PasswordHash: string(passwordHash),
		Profile:      input.Profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error(logger.Entry{
			Action:  "create_user_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]interface{}{
				"email": input.Email,
				"role":  input.Role,
			},
		})
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:  "user_created",
		Message: fmt.Sprintf("user %s created", user.Email),
		Additional: map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
			"role":    user.Role,
		},
	})

	return &in.CreateUserOutput{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// validateProfile проверяет обязательные атрибуты профиля роли
func validateProfile(role string, profile map[string]interface{}) error {
	get := func(key string) string {
		if profile == nil {
			return ""
		}
		v, _ := profile[key].(string)
		return v
	}

	switch role {
	case domain.RoleDonor:
		if get("full_name") == "" {
			return fmt.Errorf("%w: full_name", domain.ErrMissingProfileField)
		}
		if _, err := matchdomain.ParseBloodGroup(get("blood_group")); err != nil {
			return err
		}
	case domain.RolePatient:
		if get("full_name") == "" {
			return fmt.Errorf("%w: full_name", domain.ErrMissingProfileField)
		}
	case domain.RoleHospital:
		if get("hospital_name") == "" {
			return fmt.Errorf("%w: hospital_name", domain.ErrMissingProfileField)
		}
	}
	return nil
}
