package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/slotbook/slotbook/internal/utils"
	"github.com/slotbook/slotbook/pkg/booking"
	"github.com/slotbook/slotbook/pkg/slot"
)

// weekdayCount is the number of columns in the grid, Monday through Friday.
const weekdayCount = 5

// Cell is one (day, hour) cell of the weekly grid.
type Cell struct {
	Slots     []booking.SlotAvailability
	OpenCount int
	IsFull    bool
}

// WeekView is the Monday-to-Friday calendar grid for one week.
type WeekView struct {
	Days  []string
	Today string
	Hours []int
	Cells map[string]map[int]Cell
}

type Service struct {
	bookingService *booking.Service
	loc            *time.Location
	clock          utils.Clock
}

func NewService(bookingService *booking.Service, loc *time.Location, clock utils.Clock) *Service {
	return &Service{
		bookingService: bookingService,
		loc:            loc,
		clock:          clock,
	}
}

// GetWeek builds the weekly grid for the week containing date. Hour rows are
// the distinct start hours of that week's slots; cells carry the slots of the
// (day, hour) bucket with their open-spot counts.
func (s *Service) GetWeek(ctx context.Context, date time.Time) (WeekView, error) {
	views, err := s.bookingService.GetAvailability(ctx)
	if err != nil {
		return WeekView{}, fmt.Errorf("failed to get availability: %w", err)
	}

	availabilityBySlot := make(map[string]booking.SlotAvailability, len(views))
	slots := make([]slot.Slot, 0, len(views))
	for _, v := range views {
		availabilityBySlot[v.Slot.ID] = v
		slots = append(slots, v.Slot)
	}

	buckets := BucketByDayAndHour(slots, s.loc)

	monday := StartOfWeek(date, s.loc)
	days := make([]string, 0, weekdayCount)
	for i := 0; i < weekdayCount; i++ {
		days = append(days, monday.AddDate(0, 0, i).Format(DayKeyFormat))
	}

	hourSet := make(map[int]struct{})
	cells := make(map[string]map[int]Cell, weekdayCount)
	for _, day := range days {
		for hour, bucket := range buckets[day] {
			hourSet[hour] = struct{}{}

			cell := Cell{Slots: make([]booking.SlotAvailability, 0, len(bucket))}
			for _, sl := range bucket {
				v := availabilityBySlot[sl.ID]
				cell.Slots = append(cell.Slots, v)
				cell.OpenCount += v.SpotsLeft
			}
			cell.IsFull = cell.OpenCount == 0

			if cells[day] == nil {
				cells[day] = make(map[int]Cell)
			}
			cells[day][hour] = cell
		}
	}

	hours := make([]int, 0, len(hourSet))
	for hour := range hourSet {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	return WeekView{
		Days:  days,
		Today: s.clock.Now().In(s.loc).Format(DayKeyFormat),
		Hours: hours,
		Cells: cells,
	}, nil
}
