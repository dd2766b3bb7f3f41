package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"jalali-planner/internal/model"
	"jalali-planner/internal/repository"
)

const maxTextLength = 255

// CreateTaskInput represents data required to create a task.
type CreateTaskInput struct {
	Text             string   `json:"text"`
	Date             string   `json:"date"`
	Completed        bool     `json:"completed"`
	Amount           *float64 `json:"amount"`
	Recipient        *string  `json:"recipient"`
	IsRecurring      bool     `json:"is_recurring"`
	RecurrenceMonths *int     `json:"recurrence_months"`
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
// Date and owner are immutable after creation.
type UpdateTaskInput struct {
	Text      *string  `json:"text"`
	Completed *bool    `json:"completed"`
	Amount    *float64 `json:"amount"`
	Recipient *string  `json:"recipient"`
}

// TaskService wraps task-related business logic. Every operation takes the
// caller's user id and never reaches across owners.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTask validates the request, expands recurrence and persists the
// resulting rows in one batch. The original (first) row is returned.
func (s *TaskService) CreateTask(ctx context.Context, userID uint, input CreateTaskInput) (*model.Task, error) {
	verrs := ValidationErrors{}

	if input.Text == "" {
		verrs.Add("text", "The text field is required.")
	} else if len(input.Text) > maxTextLength {
		verrs.Add("text", "The text field must not be greater than 255 characters.")
	}

	if !validDate(input.Date) {
		verrs.Add("date", "The date field must match the format Y-m-d.")
	}

	if input.Amount != nil && *input.Amount < 0 {
		verrs.Add("amount", "The amount field must be at least 0.")
	}

	if input.Recipient != nil && len(*input.Recipient) > maxTextLength {
		verrs.Add("recipient", "The recipient field must not be greater than 255 characters.")
	}

	if input.IsRecurring {
		if input.RecurrenceMonths == nil {
			verrs.Add("recurrence_months", "The recurrence months field is required when is recurring is true.")
		} else if *input.RecurrenceMonths < 1 {
			verrs.Add("recurrence_months", "The recurrence months field must be at least 1.")
		}
	}

	if verrs.Any() {
		return nil, verrs
	}

	if input.Amount != nil {
		rounded := roundMoney(*input.Amount)
		input.Amount = &rounded
	}

	tasks := Expand(input, userID)
	if err := s.taskRepo.CreateBatch(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks[0], nil
}

// TasksByDate returns the user's tasks scheduled exactly on the given day.
func (s *TaskService) TasksByDate(ctx context.Context, userID uint, date string) ([]model.Task, error) {
	if !validDate(date) {
		verrs := ValidationErrors{}
		verrs.Add("date", "The date field must match the format Y-m-d.")
		return nil, verrs
	}
	return s.taskRepo.ListByUserAndDate(ctx, userID, date)
}

// TasksGroupedByDate returns the user's tasks keyed by ISO date, optionally
// limited to [start, end]. The filter applies only when both bounds are
// given; a lone bound is ignored, matching the API contract.
func (s *TaskService) TasksGroupedByDate(ctx context.Context, userID uint, start, end string) (map[string][]model.Task, error) {
	var (
		tasks []model.Task
		err   error
	)

	if start != "" && end != "" {
		verrs := ValidationErrors{}
		if !validDate(start) {
			verrs.Add("start_date", "The start date field must match the format Y-m-d.")
		}
		if !validDate(end) {
			verrs.Add("end_date", "The end date field must match the format Y-m-d.")
		}
		if !verrs.Any() && end < start {
			verrs.Add("end_date", "The end date field must be a date after or equal to start date.")
		}
		if verrs.Any() {
			return nil, verrs
		}
		tasks, err = s.taskRepo.ListByUserInRange(ctx, userID, start, end)
	} else {
		tasks, err = s.taskRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.Task)
	for _, task := range tasks {
		grouped[task.Date] = append(grouped[task.Date], task)
	}
	return grouped, nil
}

// UpdateTask applies a partial update to the caller's own task. A task owned
// by someone else yields ErrForbidden, a missing id ErrNotFound.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	verrs := ValidationErrors{}
	if input.Text != nil {
		if *input.Text == "" {
			verrs.Add("text", "The text field is required.")
		} else if len(*input.Text) > maxTextLength {
			verrs.Add("text", "The text field must not be greater than 255 characters.")
		}
	}
	if input.Amount != nil && *input.Amount < 0 {
		verrs.Add("amount", "The amount field must be at least 0.")
	}
	if input.Recipient != nil && len(*input.Recipient) > maxTextLength {
		verrs.Add("recipient", "The recipient field must not be greater than 255 characters.")
	}
	if verrs.Any() {
		return nil, verrs
	}

	fields := make(map[string]interface{})
	if input.Text != nil {
		fields["text"] = *input.Text
	}
	if input.Completed != nil {
		fields["completed"] = *input.Completed
	}
	if input.Amount != nil {
		fields["amount"] = roundMoney(*input.Amount)
	}
	if input.Recipient != nil {
		fields["recipient"] = *input.Recipient
	}

	if err := s.taskRepo.UpdateFields(ctx, task, fields); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the caller's own task. Deleting twice is ErrNotFound
// on the second call.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint) error {
	if _, err := s.findOwned(ctx, userID, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

func (s *TaskService) findOwned(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("find task: %w", err)
	}
	if task.UserID != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

func validDate(date string) bool {
	t, err := time.Parse(model.DateLayout, date)
	return err == nil && t.Format(model.DateLayout) == date
}

// roundMoney keeps amounts at two decimal places, like the decimal(10,2)
// column they land in.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
