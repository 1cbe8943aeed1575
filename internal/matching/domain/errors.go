package domain

import "errors"

var (
	// ErrPatientNotFound возвращается когда пациент заявки не найден
	ErrPatientNotFound = errors.New("patient not found")

	// ErrHospitalNotFound возвращается когда госпиталь заявки не найден
	ErrHospitalNotFound = errors.New("hospital not found")

	// ErrDonorNotFound возвращается когда донор не найден
	ErrDonorNotFound = errors.New("donor not found")

	// ErrMatchNotFound возвращается когда для пары (заявка, донор) нет записи
	ErrMatchNotFound = errors.New("donor match not found")

	// ErrMatchAlreadyResolved возвращается при попытке повторного ответа на match
	ErrMatchAlreadyResolved = errors.New("donor match already resolved")

	// ErrInvalidBloodGroup возвращается при неизвестной группе крови
	ErrInvalidBloodGroup = errors.New("invalid blood group")

	// ErrInvalidCoordinates возвращается при невалидных координатах
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidResponse возвращается когда ответ донора не ACCEPTED/REJECTED
	ErrInvalidResponse = errors.New("invalid donor response")

	// ErrInvalidDonationType возвращается для заявок, не требующих доноров
	ErrInvalidDonationType = errors.New("invalid donation type")
)
