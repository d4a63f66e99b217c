package accesscard

import "time"

// CardGrant запрос на выдачу временного доступа в группе считывателей
type CardGrant struct {
	AccessGroup    string    `json:"access_group"`
	VariableSymbol string    `json:"variable_symbol"`
	ValidFrom      time.Time `json:"valid_from"`
	ValidTo        time.Time `json:"valid_to"`
}

// ErrorResponse модель ошибки системы доступа
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
