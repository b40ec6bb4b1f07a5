package models

import "errors"

var (
	// ErrInvalidWeekday возвращается при дне недели вне диапазона 0-6
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	// ErrInvalidWindow возвращается при некорректном рабочем окне
	ErrInvalidWindow = errors.New("invalid schedule window")
)
