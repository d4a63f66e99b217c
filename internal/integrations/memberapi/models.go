package memberapi

// Member модель профиля участника клуба
type Member struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	FullName     string   `json:"full_name"`
	RoomNumber   string   `json:"room_number"`
	ActiveMember bool     `json:"active_member"`
	SectionHead  bool     `json:"section_head"`
	Roles        []string `json:"roles"`
}

// ServiceEntitlement подтвержденное право участника на сервис бронирования
type ServiceEntitlement struct {
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

// ErrorResponse модель ошибки сервиса участников
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
