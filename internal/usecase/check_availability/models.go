package check_availability

import "time"

// Request модель запроса предварительной проверки окна бронирования
type Request struct {
	UserID     int64     // ID участника клуба
	CalendarID string    // ID календаря (ресурса)
	Guests     int       // Количество гостей
	Start      time.Time // Начало окна
	End        time.Time // Конец окна
}

// Response модель ответа предварительной проверки
// Просмотр не создает событий и не дает гарантий: слот может быть занят
// между проверкой и созданием брони
type Response struct {
	Available bool   // Приведет ли заявка к созданию события
	Approval  bool   // Потребуется ли подтверждение менеджера
	Outcome   string // Итог конвейера решений
	Reason    string // Нарушенное правило для отказов
	Message   string // Пояснение для пользователя
}
