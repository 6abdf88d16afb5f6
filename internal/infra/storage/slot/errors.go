package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotOverlap возвращается, когда интервал нового слота пересекается
	// с существующим слотом хоста (сработал constraint на уровне БД)
	ErrSlotOverlap = errors.New("slot.repository: slot overlaps existing slot")

	// ErrSlotBooked возвращается при попытке удалить занятый слот
	ErrSlotBooked = errors.New("slot.repository: slot is booked")

	// ErrConflict возвращается, когда условное массовое обновление статусов
	// затронуло не все запрошенные слоты (часть была занята конкурентно).
	// Вызывающая транзакция обязана откатиться целиком
	ErrConflict = errors.New("slot.repository: conditional update conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
