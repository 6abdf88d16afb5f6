package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotOverlap возвращается, когда интервал нового слота пересекается
	// с существующим слотом хоста
	ErrSlotOverlap = errors.New("slot overlaps existing slot")

	// ErrSlotBooked возвращается при попытке удалить занятый слот
	// Сначала нужно отменить бронирование
	ErrSlotBooked = errors.New("slot is booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
