package domain

import "errors"

var (
	// ErrUserAlreadyExists пользователь с таким email уже существует
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidEmail некорректный формат email
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidRole некорректная роль
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidStatus некорректный статус
	ErrInvalidStatus = errors.New("invalid status")

	// ErrPasswordTooShort пароль слишком короткий
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrMissingProfileField в профиле роли не хватает обязательного поля
	ErrMissingProfileField = errors.New("missing required profile field")

	// ErrInvalidStockQuantity отрицательный объем или порог запаса
	ErrInvalidStockQuantity = errors.New("stock quantity and threshold must be non-negative")

	// ErrVentilatorNotFound аппарат ИВЛ не найден
	ErrVentilatorNotFound = errors.New("ventilator not found")

	// ErrInvalidVentilatorStatus некорректный статус аппарата ИВЛ
	ErrInvalidVentilatorStatus = errors.New("invalid ventilator status")

	// ErrHospitalNotFound госпиталь не найден
	ErrHospitalNotFound = errors.New("hospital not found")

	// ErrUnauthorized недостаточно прав
	ErrUnauthorized = errors.New("unauthorized")
)
