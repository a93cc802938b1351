package notifyservice

// Notification уведомление для асинхронной доставки получателю
type Notification struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
