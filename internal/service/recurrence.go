package service

import (
	"time"

	"jalali-planner/internal/model"
)

// Expand materializes a creation request into the rows to insert. A
// non-recurring request yields the single original row. A recurring request
// with N months yields N rows one calendar month apart: the first keeps
// IsRecurring and RemainingOccurrences, the rest are plain independent tasks.
func Expand(input CreateTaskInput, userID uint) []*model.Task {
	first := &model.Task{
		UserID:           userID,
		Text:             input.Text,
		Date:             input.Date,
		Completed:        input.Completed,
		Amount:           input.Amount,
		Recipient:        input.Recipient,
		IsRecurring:      input.IsRecurring,
		RecurrenceMonths: input.RecurrenceMonths,
	}

	if !input.IsRecurring || input.RecurrenceMonths == nil || *input.RecurrenceMonths < 1 {
		return []*model.Task{first}
	}

	months := *input.RecurrenceMonths
	remaining := months
	first.RemainingOccurrences = &remaining

	start, _ := time.Parse(model.DateLayout, input.Date)
	tasks := make([]*model.Task, 0, months)
	tasks = append(tasks, first)

	for i := 1; i < months; i++ {
		m := months
		tasks = append(tasks, &model.Task{
			UserID:           userID,
			Text:             input.Text,
			Date:             addMonthsClamped(start, i).Format(model.DateLayout),
			Completed:        input.Completed,
			Amount:           input.Amount,
			Recipient:        input.Recipient,
			IsRecurring:      false,
			RecurrenceMonths: &m,
		})
	}
	return tasks
}

// addMonthsClamped adds calendar months keeping the day-of-month, clamped to
// the target month's last day (Jan 31 + 1 month = Feb 28/29). time.AddDate
// would normalize the overflow into the next month instead.
func addMonthsClamped(t time.Time, months int) time.Time {
	day := t.Day()
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
