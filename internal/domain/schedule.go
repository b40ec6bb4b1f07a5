package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/CourtBookingService/pkg/types"
)

// Schedule is the canonical in-memory form of a venue's weekly schedule:
// recurring open windows per weekday plus two exception layers that close
// a weekday or a specific date entirely.
//
// Weekday keys follow time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
type Schedule struct {
	WeeklyWindows  map[int][]types.Window
	ClosedWeekdays map[int]bool
	ClosedDates    map[string]bool // keys are "YYYY-MM-DD" strings, compared verbatim
}

// EmptySchedule returns a schedule with no windows and no exceptions
func EmptySchedule() Schedule {
	return Schedule{
		WeeklyWindows:  map[int][]types.Window{},
		ClosedWeekdays: map[int]bool{},
		ClosedDates:    map[string]bool{},
	}
}

// IsClosedOn returns true if the date is fully unavailable: its weekday is in
// ClosedWeekdays or the date itself is in ClosedDates. Exceptions take
// precedence over WeeklyWindows content.
func (s Schedule) IsClosedOn(date time.Time) bool {
	if s.ClosedWeekdays[int(date.Weekday())] {
		return true
	}
	return s.ClosedDates[date.Format(DateFormat)]
}

// WindowsFor returns the open windows for a weekday, empty if none configured
func (s Schedule) WindowsFor(weekday int) []types.Window {
	return s.WeeklyWindows[weekday]
}

// ClosedWeekdayList returns closed weekdays as a sorted slice (for persistence)
func (s Schedule) ClosedWeekdayList() []int {
	out := make([]int, 0, len(s.ClosedWeekdays))
	for d := range s.ClosedWeekdays {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// ClosedDateList returns closed dates as a sorted slice (for persistence)
func (s Schedule) ClosedDateList() []string {
	out := make([]string, 0, len(s.ClosedDates))
	for d := range s.ClosedDates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ParseSchedule декодирует персистентное представление расписания в каноничную форму.
// Разбор защитный и никогда не падает: битый JSON, null, неожиданные типы -
// все деградирует до пустых структур, а не до ошибки запроса. Исторические
// данные содержат ключи дней недели и как числа, и как строки - принимаем оба
// варианта.
func ParseSchedule(weeklyRaw, closedWeekdaysRaw, closedDatesRaw []byte) Schedule {
	return Schedule{
		WeeklyWindows:  parseWeeklyWindows(weeklyRaw),
		ClosedWeekdays: parseClosedWeekdays(closedWeekdaysRaw),
		ClosedDates:    parseClosedDates(closedDatesRaw),
	}
}

func parseWeeklyWindows(raw []byte) map[int][]types.Window {
	windows := map[int][]types.Window{}
	if len(raw) == 0 {
		return windows
	}

	var decoded map[string][]types.Window
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return windows
	}

	for key, dayWindows := range decoded {
		weekday, err := strconv.Atoi(key)
		if err != nil || weekday < 0 || weekday > 6 {
			continue
		}
		if len(dayWindows) == 0 {
			continue
		}
		windows[weekday] = dayWindows
	}

	return windows
}

func parseClosedWeekdays(raw []byte) map[int]bool {
	closed := map[int]bool{}
	if len(raw) == 0 {
		return closed
	}

	// Элементы приходят как числа или их строковые представления
	var decoded []json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return closed
	}

	for _, item := range decoded {
		var asInt int
		if err := json.Unmarshal(item, &asInt); err == nil {
			if asInt >= 0 && asInt <= 6 {
				closed[asInt] = true
			}
			continue
		}

		var asString string
		if err := json.Unmarshal(item, &asString); err == nil {
			if n, err := strconv.Atoi(asString); err == nil && n >= 0 && n <= 6 {
				closed[n] = true
			}
		}
	}

	return closed
}

func parseClosedDates(raw []byte) map[string]bool {
	closed := map[string]bool{}
	if len(raw) == 0 {
		return closed
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return closed
	}

	// Даты сравниваются строково, без таймзонной арифметики;
	// нормализуем только через парсинг формата
	for _, d := range decoded {
		if _, err := time.Parse(DateFormat, d); err != nil {
			continue
		}
		closed[d] = true
	}

	return closed
}
