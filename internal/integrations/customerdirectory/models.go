package customerdirectory

// Customer модель клиента из справочника клиентов
type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от справочника клиентов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
