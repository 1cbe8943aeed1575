package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// ListUsersService реализует ListUsersUseCase
type ListUsersService struct {
	userRepo out.UserRepository
	log      *logger.Logger
}

// NewListUsersService создает новый сервис списка пользователей
func NewListUsersService(userRepo out.UserRepository, log *logger.Logger) *ListUsersService {
	return &ListUsersService{
		userRepo: userRepo,
		log:      log,
	}
}

// Execute возвращает страницу пользователей с фильтрами по роли и статусу
func (s *ListUsersService) Execute(ctx context.Context, input in.ListUsersInput) (*in.ListUsersOutput, error) {
	if input.Role != "" && !domain.IsValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}
	if input.Status != "" && !domain.IsValidStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.userRepo.List(ctx, out.ListUsersFilters{
		Role:   input.Role,
		Status: input.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "list_users_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("list users: %w", err)
	}

	dtos := make([]in.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, in.UserDTO{
			UserID:    u.ID,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.Role,
			Status:    u.Status,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
			UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
		})
	}

	return &in.ListUsersOutput{
		Users:      dtos,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}
