package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	HostID            int64           // ID хоста
	WindowStart       time.Time       // Начало окна встречи
	WindowEnd         time.Time       // Конец окна встречи (полуинтервал)
	AppointmentTypeID int64           // ID типа встречи (задаёт длительность)
	Customer          domain.Customer // Контактные данные клиента (непрозрачны для планировщика)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                  int64     // ID созданного бронирования
	Reference           string    // Внешний код бронирования (UUID)
	HostID              int64     // ID хоста
	AppointmentTypeID   int64     // ID типа встречи
	AppointmentTypeName string    // Название типа встречи (денормализовано)
	StartTime           time.Time // Начало встречи
	EndTime             time.Time // Конец встречи
	DurationMinutes     int       // Длительность в минутах
	Status              string    // Статус бронирования
	CustomerName        string    // Имя клиента
	CustomerEmail       string    // Email клиента
	CustomerCompany     *string   // Компания клиента (опционально)
	SlotIDs             []int64   // Захваченные слоты в порядке start_time

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
