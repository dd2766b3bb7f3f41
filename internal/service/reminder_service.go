package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"jalali-planner/internal/jalali"
	"jalali-planner/internal/model"
	"jalali-planner/internal/repository"
)

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	taskRepo *repository.TaskRepository
}

func NewReminderService(taskRepo *repository.TaskRepository) *ReminderService {
	return &ReminderService{taskRepo: taskRepo}
}

// DailySummary renders the user's tasks for the given day, payments first.
// Returns an empty string when there is nothing to report.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User, now time.Time) (string, error) {
	date := now.Format(model.DateLayout)
	tasks, err := s.taskRepo.ListByUserAndDate(ctx, user.ID, date)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "", nil
	}

	var payments, plain []model.Task
	for _, task := range tasks {
		if task.Amount != nil {
			payments = append(payments, task)
		} else {
			plain = append(plain, task)
		}
	}

	var builder strings.Builder
	builder.WriteString("📅 <b>Today's plan</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s (%s)\n", jalali.FormattedDate(now), date))

	if len(payments) > 0 {
		builder.WriteString("\n💸 <b>Payments due</b>\n")
		for _, task := range payments {
			builder.WriteString(formatTaskLine(task))
		}
	}

	if len(plain) > 0 {
		builder.WriteString("\n📋 <b>Tasks</b>\n")
		for _, task := range plain {
			builder.WriteString(formatTaskLine(task))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatTaskLine(task model.Task) string {
	var sb strings.Builder

	icon := "🟢"
	if task.Completed {
		icon = "✅"
	}
	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Text))))

	if task.Amount != nil {
		sb.WriteString(fmt.Sprintf(" — %.2f", *task.Amount))
		if task.Recipient != nil && strings.TrimSpace(*task.Recipient) != "" {
			sb.WriteString(fmt.Sprintf(" to %s", html.EscapeString(strings.TrimSpace(*task.Recipient))))
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
