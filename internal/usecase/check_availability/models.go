package check_availability

import "time"

// Request модель запроса проверки доступности окна
type Request struct {
	HostID            int64     // ID хоста
	WindowStart       time.Time // Начало окна
	WindowEnd         time.Time // Конец окна (полуинтервал)
	AppointmentTypeID int64     // ID типа встречи (задаёт требуемую длительность)
}

// Response модель ответа проверки доступности
//
// Ответ НОСИТ СПРАВОЧНЫЙ ХАРАКТЕР: между проверкой и созданием бронирования
// слоты могут быть заняты. Available=true не гарантирует успех CreateBooking
type Response struct {
	Available         bool    // Покрывается ли окно непрерывной цепочкой свободных слотов
	SlotIDs           []int64 // Кандидатные слоты в порядке start_time (если Available)
	RequiredSlotCount int     // Сколько слотов требует тип встречи
	Reason            string  // Диагностика для Available=false (первый разрыв / нехватка)
}
