package out

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
)

// UserRepository — интерфейс репозитория для работы с пользователями
type UserRepository interface {
	// Create создает пользователя вместе с профилем роли одной транзакцией
	Create(ctx context.Context, user *domain.User) error

	// FindByID находит пользователя по ID
	FindByID(ctx context.Context, userID string) (*domain.User, error)

	// FindByEmail находит пользователя по email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// List возвращает список пользователей с фильтрами
	List(ctx context.Context, filters ListUsersFilters) ([]*domain.User, int, error)
}

// ListUsersFilters — фильтры для списка пользователей
type ListUsersFilters struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

// MetricsRepository — агрегированные метрики для обзора системы
type MetricsRepository interface {
	// GetSystemMetrics возвращает сводные метрики
	GetSystemMetrics(ctx context.Context) (*in.SystemMetrics, error)

	// GetRequestsByStatus возвращает распределение заявок по статусам
	GetRequestsByStatus(ctx context.Context) (map[string]int, error)

	// GetRequestsByType возвращает распределение заявок по видам
	GetRequestsByType(ctx context.Context) (map[string]int, error)

	// GetDonorDistribution возвращает распределение доноров по группам крови
	GetDonorDistribution(ctx context.Context) (map[string]int, error)
}
