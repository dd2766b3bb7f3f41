package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestExpandNonRecurring(t *testing.T) {
	input := CreateTaskInput{
		Text:      "Buy groceries",
		Date:      "2024-05-10",
		Amount:    floatPtr(42.5),
		Recipient: strPtr("Grocer"),
	}

	tasks := Expand(input, 7)

	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, uint(7), task.UserID)
	assert.Equal(t, "Buy groceries", task.Text)
	assert.Equal(t, "2024-05-10", task.Date)
	assert.False(t, task.IsRecurring)
	assert.Nil(t, task.RecurrenceMonths)
	assert.Nil(t, task.RemainingOccurrences)
	assert.Equal(t, 42.5, *task.Amount)
}

func TestExpandRecurringMonthlySeries(t *testing.T) {
	input := CreateTaskInput{
		Text:             "Pay rent",
		Date:             "2024-05-10",
		IsRecurring:      true,
		RecurrenceMonths: intPtr(4),
	}

	tasks := Expand(input, 1)

	require.Len(t, tasks, 4)
	wantDates := []string{"2024-05-10", "2024-06-10", "2024-07-10", "2024-08-10"}
	for i, task := range tasks {
		assert.Equal(t, wantDates[i], task.Date, "instance %d", i)
		assert.Equal(t, "Pay rent", task.Text)
		assert.Equal(t, 4, *task.RecurrenceMonths)
	}

	assert.True(t, tasks[0].IsRecurring)
	require.NotNil(t, tasks[0].RemainingOccurrences)
	assert.Equal(t, 4, *tasks[0].RemainingOccurrences)

	for _, task := range tasks[1:] {
		assert.False(t, task.IsRecurring)
		assert.Nil(t, task.RemainingOccurrences)
	}
}

func TestExpandClampsToMonthEnd(t *testing.T) {
	input := CreateTaskInput{
		Text:             "Rent",
		Date:             "2024-01-31",
		IsRecurring:      true,
		RecurrenceMonths: intPtr(3),
	}

	tasks := Expand(input, 1)

	require.Len(t, tasks, 3)
	// 2024 is a leap year: January 31 clamps to February 29, then back to
	// the real 31st in March.
	assert.Equal(t, "2024-01-31", tasks[0].Date)
	assert.Equal(t, "2024-02-29", tasks[1].Date)
	assert.Equal(t, "2024-03-31", tasks[2].Date)
}

func TestExpandClampsAcrossYearBoundary(t *testing.T) {
	input := CreateTaskInput{
		Text:             "Subscription",
		Date:             "2023-12-31",
		IsRecurring:      true,
		RecurrenceMonths: intPtr(3),
	}

	tasks := Expand(input, 1)

	require.Len(t, tasks, 3)
	assert.Equal(t, "2023-12-31", tasks[0].Date)
	assert.Equal(t, "2024-01-31", tasks[1].Date)
	assert.Equal(t, "2024-02-29", tasks[2].Date)
}

func TestExpandSingleOccurrence(t *testing.T) {
	input := CreateTaskInput{
		Text:             "One-off with recurrence flag",
		Date:             "2024-05-10",
		IsRecurring:      true,
		RecurrenceMonths: intPtr(1),
	}

	tasks := Expand(input, 1)

	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].IsRecurring)
	assert.Equal(t, 1, *tasks[0].RemainingOccurrences)
}
