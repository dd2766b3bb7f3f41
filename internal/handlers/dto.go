package handlers

import (
	"time"

	"jalali-planner/internal/jalali"
	"jalali-planner/internal/model"
)

// TaskResponse is the wire form of a task. The two Jalali fields are derived
// from the stored Gregorian date at serialization time, never stored.
type TaskResponse struct {
	ID                   uint      `json:"id"`
	Text                 string    `json:"text"`
	Date                 string    `json:"date"`
	Completed            bool      `json:"completed"`
	Amount               *float64  `json:"amount"`
	Recipient            *string   `json:"recipient"`
	IsRecurring          bool      `json:"is_recurring"`
	RecurrenceMonths     *int      `json:"recurrence_months"`
	RemainingOccurrences *int      `json:"remaining_occurrences"`
	JalaliDate           string    `json:"jalali_date"`
	FormattedJalaliDate  string    `json:"formatted_jalali_date"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func fromTask(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:                   t.ID,
		Text:                 t.Text,
		Date:                 t.Date,
		Completed:            t.Completed,
		Amount:               t.Amount,
		Recipient:            t.Recipient,
		IsRecurring:          t.IsRecurring,
		RecurrenceMonths:     t.RecurrenceMonths,
		RemainingOccurrences: t.RemainingOccurrences,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
	if day, err := time.Parse(model.DateLayout, t.Date); err == nil {
		resp.JalaliDate = jalali.DateString(day)
		resp.FormattedJalaliDate = jalali.FormattedDate(day)
	}
	return resp
}

func fromTaskList(tasks []model.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = fromTask(&tasks[i])
	}
	return result
}

func fromGroupedTasks(grouped map[string][]model.Task) map[string][]TaskResponse {
	result := make(map[string][]TaskResponse, len(grouped))
	for date, tasks := range grouped {
		result[date] = fromTaskList(tasks)
	}
	return result
}

// UserResponse is the wire form of a user; the password hash never leaves
// the server.
type UserResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	TelegramLinked bool   `json:"telegram_linked"`
}

func fromUser(u *model.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		TelegramLinked: u.TelegramChatID != 0,
	}
}
