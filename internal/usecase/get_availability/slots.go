package get_availability

import (
	"github.com/m04kA/CourtBookingService/internal/domain"
	"github.com/m04kA/CourtBookingService/pkg/types"
)

// generateSlots разбивает рабочие окна площадки на слоты фиксированной длины.
// Окна обходятся в том порядке, в каком они заданы в расписании, внутри окна
// слоты идут по возрастанию времени. Неполный остаток окна слотом не становится.
func generateSlots(windows []types.Window, slotMinutes int) []domain.Slot {
	slots := make([]domain.Slot, 0)

	for _, window := range windows {
		if !window.IsValid() {
			continue
		}

		for _, part := range types.SplitWindow(window.Start, window.End, slotMinutes) {
			slots = append(slots, domain.Slot{
				Start:  part.Start,
				End:    part.End,
				Status: domain.SlotFree,
			})
		}
	}

	return slots
}

// markReservedSlots помечает слоты, пересекающиеся хотя бы с одним блокирующим бронированием.
// Интервалы полуоткрытые: бронирование, заканчивающееся ровно в начале слота
// (или начинающееся ровно в его конце), слот не занимает.
func markReservedSlots(slots []domain.Slot, bookings []*domain.Booking) []domain.Slot {
	for i := range slots {
		slotStart := slots[i].Start.Minutes()
		slotEnd := slots[i].End.Minutes()

		for _, booking := range bookings {
			if !booking.BlocksSlot() {
				continue
			}

			if types.Overlaps(slotStart, slotEnd, booking.StartTime.Minutes(), booking.EndTime.Minutes()) {
				slots[i].Status = domain.SlotReserved
				break
			}
		}
	}

	return slots
}
