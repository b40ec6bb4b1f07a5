package notifyservice

// SendNotificationRequest запрос на отправку уведомления
type SendNotificationRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}
