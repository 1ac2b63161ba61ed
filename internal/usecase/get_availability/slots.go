package get_availability

import (
	"github.com/dkoval8/ClassBookingService/internal/domain"
	"github.com/dkoval8/ClassBookingService/pkg/types"
)

// filterBookable отбирает назначения слотов, доступные для бронирования:
// - слоты, занятые до вместимости на эту дату, исключаются
// - при бронировании на сегодня исключаются слоты, которые уже начались
//   (start_time не позже текущего времени); на будущие даты фильтр не действует
// Каждому выжившему слоту проставляется остаток мест (capacity - занято)
// Порядок входного среза (по времени начала) сохраняется
func filterBookable(
	assignments []*domain.SlotAssignment,
	counts map[int64]int,
	sameDay bool,
	nowTime types.TimeString,
) []Slot {
	result := make([]Slot, 0, len(assignments))

	for _, sa := range assignments {
		booked := counts[sa.ID]

		if booked >= sa.Slot.Capacity {
			continue
		}

		if sameDay && sa.Slot.HasStarted(nowTime) {
			continue
		}

		result = append(result, Slot{
			SlotAssignmentID: sa.ID,
			StartTime:        sa.Slot.StartTime,
			EndTime:          sa.Slot.EndTime,
			Capacity:         sa.Slot.Capacity,
			AvailableSpots:   sa.Slot.Capacity - booked,
		})
	}

	return result
}
