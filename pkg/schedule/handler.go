package schedule

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/slotbook/slotbook/internal/rest"
	"github.com/slotbook/slotbook/internal/utils"
	"github.com/slotbook/slotbook/pkg/booking"
)

type Handler struct {
	service *Service
}

type CellDTO struct {
	Slots     []booking.SlotAvailabilityDTO `json:"slots"`
	OpenCount int                           `json:"openCount"`
	IsFull    bool                          `json:"isFull"`
}

type HourRowDTO struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

type WeekViewDTO struct {
	Days  []string                   `json:"days"`
	Today string                     `json:"today"`
	Hours []HourRowDTO               `json:"hours"`
	Cells map[string]map[int]CellDTO `json:"cells"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

// GetWeek returns the weekly calendar grid. The date query parameter selects
// the week; it defaults to the current week.
// @Summary Weekly calendar grid
// @Param date query string false "Any date within the requested week (YYYY-MM-DD)"
// @Produce json
// @Success 200 {object} WeekViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/schedule/week [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date := h.service.clock.Now()
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		parsed, err := time.ParseInLocation(DayKeyFormat, dateString, h.service.loc)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	week, err := h.service.GetWeek(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.weekToDTO(week)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) weekToDTO(week WeekView) WeekViewDTO {
	hours := make([]HourRowDTO, 0, len(week.Hours))
	for _, hour := range week.Hours {
		label, _ := utils.FormatClock12(fmt.Sprintf("%02d:00", hour))
		hours = append(hours, HourRowDTO{Hour: hour, Label: label})
	}

	cells := make(map[string]map[int]CellDTO, len(week.Cells))
	for day, row := range week.Cells {
		cells[day] = make(map[int]CellDTO, len(row))
		for hour, cell := range row {
			dto := CellDTO{
				Slots:     make([]booking.SlotAvailabilityDTO, 0, len(cell.Slots)),
				OpenCount: cell.OpenCount,
				IsFull:    cell.IsFull,
			}
			for _, v := range cell.Slots {
				dto.Slots = append(dto.Slots, booking.NewSlotAvailabilityDTO(v, h.service.loc))
			}
			cells[day][hour] = dto
		}
	}

	return WeekViewDTO{
		Days:  week.Days,
		Today: week.Today,
		Hours: hours,
		Cells: cells,
	}
}
