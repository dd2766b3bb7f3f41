package handlers

import (
	"net/http"
	"strconv"

	"jalali-planner/internal/jalali"
	"jalali-planner/internal/model"
	"jalali-planner/internal/service"
)

// CalendarHandler serves the Jalali month grid: one cell per day, each
// mapped to its Gregorian ISO date for follow-up task queries.
type CalendarHandler struct{}

func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{}
}

type calendarDay struct {
	Day        int    `json:"day"`
	Date       string `json:"date"` // Gregorian ISO
	JalaliDate string `json:"jalali_date"`
	Weekday    string `json:"weekday"`
	Today      bool   `json:"today"`
}

type calendarResponse struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	MonthName string        `json:"month_name"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Days      []calendarDay `json:"days"`
}

// Month handles GET /api/calendar?year=&month= (Jalali). Without parameters
// it serves the current Jalali month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	today := jalali.Today()

	year, month := today.Year, today.Month
	query := r.URL.Query()
	if raw := query.Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			respondValidation(w, "year", "The year field must be a positive integer.")
			return
		}
		year = v
	}
	if raw := query.Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			respondValidation(w, "month", "The month field must be between 1 and 12.")
			return
		}
		month = v
	}

	start, end := jalali.MonthRange(year, month)
	length := jalali.MonthLength(year, month)

	days := make([]calendarDay, 0, length)
	for day := 1; day <= length; day++ {
		t := jalali.ToTime(jalali.Date{Year: year, Month: month, Day: day})
		days = append(days, calendarDay{
			Day:        day,
			Date:       t.Format(model.DateLayout),
			JalaliDate: jalali.DateString(t),
			Weekday:    t.Weekday().String(),
			Today:      year == today.Year && month == today.Month && day == today.Day,
		})
	}

	respondJSON(w, http.StatusOK, calendarResponse{
		Year:      year,
		Month:     month,
		MonthName: jalali.MonthName(month),
		StartDate: start.Format(model.DateLayout),
		EndDate:   end.Format(model.DateLayout),
		Days:      days,
	})
}

func respondValidation(w http.ResponseWriter, field, message string) {
	verrs := service.ValidationErrors{}
	verrs.Add(field, message)
	respondServiceError(w, verrs)
}
