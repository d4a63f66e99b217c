package create_event

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID             int64     // ID участника клуба
	CalendarID         string    // ID календаря (ресурса)
	Purpose            string    // Цель бронирования
	Guests             int       // Количество гостей
	Email              string    // Контактный email
	Start              time.Time // Начало окна бронирования
	End                time.Time // Конец окна бронирования
	AdditionalServices []string  // Запрошенные мини-сервисы (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            string    // ID события (совпадает с событием внешнего календаря)
	Purpose       string    // Цель бронирования
	Guests        int       // Количество гостей
	Email         string    // Контактный email
	StartDatetime time.Time // Начало окна
	EndDatetime   time.Time // Конец окна
	State         string    // Состояние события (confirmed / not_approved)
	UserID        int64     // ID участника
	CalendarID    string    // ID календаря

	AdditionalServices []string // Мини-сервисы

	// Message пояснение решения для пользователя: почему бронь ожидает
	// подтверждения менеджера
	Message string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
