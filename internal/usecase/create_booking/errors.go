package create_booking

import "errors"

var (
	// ErrAppointmentTypeNotFound возвращается, когда тип встречи не найден
	ErrAppointmentTypeNotFound = errors.New("create_booking: appointment type not found")

	// ErrInsufficientAvailability возвращается, когда окно не покрывается
	// непрерывной цепочкой свободных слотов на момент проверки.
	// Повторять запрос имеет смысл только с другим окном
	ErrInsufficientAvailability = errors.New("create_booking: insufficient availability")

	// ErrSlotConflict возвращается, когда кандидатные слоты были заняты
	// конкурентным бронированием между проверкой и захватом.
	// Безопасно повторить запрос сразу - доступность нужно перечитать
	ErrSlotConflict = errors.New("create_booking: slot conflict, lost the race")

	// ErrInvalidInput возвращается при некорректных входных данных
	// Повтор без исправления запроса бессмысленен
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
