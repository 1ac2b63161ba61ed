package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	SlotAssignmentID int64     // ID назначения слота
	ClientName       string    // Имя клиента (используется при создании нового клиента)
	ClientEmail      string    // Email клиента (ключ идентичности)
	BookingDate      time.Time // Дата бронирования (без времени)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	SlotAssignmentID int64
	ClientID         int64
	BookingDate      time.Time
	CreatedAt        time.Time
}
