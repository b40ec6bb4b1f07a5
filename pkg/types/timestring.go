package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeLayout формат времени HH:MM
const timeLayout = "15:04"

// minutesPerDay количество минут в сутках
const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString время суток в формате "HH:MM" (без даты и таймзоны)
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// FromMinutes создает TimeString из смещения в минутах от начала суток
func FromMinutes(m int) TimeString {
	if m < 0 || m >= minutesPerDay {
		return TimeString("00:00")
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Validate проверяет, что строка соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает смещение от начала суток в минутах.
// Некорректное значение трактуется как "00:00" - строгость обеспечивается
// через Validate на входных данных, а не здесь.
func (t TimeString) Minutes() int {
	return MinutesOrZero(string(t))
}

// AddMinutes возвращает время, смещенное на n минут вперед (или назад при n < 0).
// Выход за пределы суток считается ошибкой - бронирования не пересекают полночь.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m := t.Minutes() + n
	if m < 0 || m >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, n)
	}
	return FromMinutes(m), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// MinutesOrZero конвертирует строку "HH:MM" в минуты от начала суток.
// Отсутствующее или некорректное значение трактуется как "00:00" и дает 0 -
// защитный разбор расписаний, которые исторически хранятся без валидации.
func MinutesOrZero(s string) int {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0
	}

	hours, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || hours < 0 || hours > 23 {
		return 0
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || minutes < 0 || minutes > 59 {
		return 0
	}

	return hours*60 + minutes
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Граничащие интервалы (bEnd == aStart или bStart == aEnd) НЕ пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return !(bEnd <= aStart || bStart >= aEnd)
}
