package schedule

import (
	"time"

	"github.com/slotbook/slotbook/pkg/slot"
)

// DayKeyFormat is the calendar-date key used throughout the weekly grid.
const DayKeyFormat = "2006-01-02"

// BucketByDayAndHour groups slots by the calendar date and hour of their
// start time, evaluated in loc. It is deterministic and side-effect-free;
// slots on days the caller does not render are simply absent from any cell
// the caller looks up. Within a cell, slots keep their input order.
func BucketByDayAndHour(slots []slot.Slot, loc *time.Location) map[string]map[int][]slot.Slot {
	buckets := make(map[string]map[int][]slot.Slot)
	for _, s := range slots {
		start := s.StartTime.In(loc)
		day := start.Format(DayKeyFormat)
		hour := start.Hour()
		if buckets[day] == nil {
			buckets[day] = make(map[int][]slot.Slot)
		}
		buckets[day][hour] = append(buckets[day][hour], s)
	}
	return buckets
}

// StartOfWeek returns midnight of the Monday of the week containing t,
// evaluated in loc. A Sunday belongs to the week that started the previous
// Monday.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
}
