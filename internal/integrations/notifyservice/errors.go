package notifyservice

import "errors"

var (
	// ErrRequestFailed возвращается при сетевой ошибке запроса к сервису уведомлений
	ErrRequestFailed = errors.New("notifyservice: request failed")

	// ErrUnexpectedStatus возвращается при неожиданном HTTP статусе ответа
	ErrUnexpectedStatus = errors.New("notifyservice: unexpected response status")
)
