package domain

import "errors"

var (
	// ErrRequestNotFound возвращается когда заявка не найдена
	ErrRequestNotFound = errors.New("request not found")

	// ErrInvalidRequestType возвращается при неподдерживаемом типе заявки
	ErrInvalidRequestType = errors.New("invalid request type")

	// ErrInvalidUrgency возвращается при невалидном уровне срочности
	ErrInvalidUrgency = errors.New("invalid urgency")

	// ErrInvalidQuantity возвращается при неположительном объеме
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrMissingBloodGroup возвращается для заявок на кровь/плазму без группы
	ErrMissingBloodGroup = errors.New("blood group is required")

	// ErrInvalidStatusTransition возвращается при недопустимом переходе статуса
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrRequestAlreadyResolved возвращается при попытке изменить завершенную заявку
	ErrRequestAlreadyResolved = errors.New("request already resolved")

	// ErrUnauthorized возвращается при отсутствии прав доступа
	ErrUnauthorized = errors.New("unauthorized")
)
