package mailer

// Message письмо для почтового шлюза
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrorResponse модель ошибки почтового шлюза
type ErrorResponse struct {
	Detail string `json:"detail"`
}
