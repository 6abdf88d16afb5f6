package check_availability

import "errors"

var (
	// ErrAppointmentTypeNotFound возвращается, когда тип встречи не найден
	ErrAppointmentTypeNotFound = errors.New("check_availability: appointment type not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
