package types

// Window открытый интервал времени суток [Start, End)
type Window struct {
	Start TimeString `json:"start"`
	End   TimeString `json:"end"`
}

// IsValid возвращает true, если оба конца корректны и начало раньше конца
func (w Window) IsValid() bool {
	if w.Start.Validate() != nil || w.End.Validate() != nil {
		return false
	}
	return w.Start.IsBefore(w.End)
}

// SplitWindow нарезает окно [start, end) на последовательные слоты длиной ровно slotMinutes.
// Неполный хвостовой слот отбрасывается - эмитятся только целые слоты, помещающиеся до end.
func SplitWindow(start, end TimeString, slotMinutes int) []Window {
	slots := make([]Window, 0)
	if slotMinutes <= 0 {
		return slots
	}

	startMin := start.Minutes()
	endMin := end.Minutes()

	for cur := startMin; cur+slotMinutes <= endMin; cur += slotMinutes {
		slots = append(slots, Window{
			Start: FromMinutes(cur),
			End:   FromMinutes(cur + slotMinutes),
		})
	}

	return slots
}
