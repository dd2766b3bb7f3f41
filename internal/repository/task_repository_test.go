package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jalali-planner/internal/model"
)

func newTestRepo(t *testing.T) (*TaskRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))

	return NewTaskRepository(db), db
}

func seedTask(t *testing.T, repo *TaskRepository, userID uint, text, date string) *model.Task {
	t.Helper()
	task := &model.Task{UserID: userID, Text: text, Date: date}
	require.NoError(t, repo.Create(context.Background(), task))
	return task
}

func TestListByUserInRange(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	seedTask(t, repo, 1, "late", "2024-05-20")
	seedTask(t, repo, 1, "early", "2024-05-02")
	seedTask(t, repo, 1, "outside", "2024-06-02")
	seedTask(t, repo, 2, "other user", "2024-05-10")

	tasks, err := repo.ListByUserInRange(ctx, 1, "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "early", tasks[0].Text)
	assert.Equal(t, "late", tasks[1].Text)
}

func TestListByUserInRangeBoundsInclusive(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	seedTask(t, repo, 1, "on start", "2024-05-01")
	seedTask(t, repo, 1, "on end", "2024-05-31")

	tasks, err := repo.ListByUserInRange(ctx, 1, "2024-05-01", "2024-05-31")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestListByUserAndDate(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := seedTask(t, repo, 1, "first", "2024-05-10")
	second := seedTask(t, repo, 1, "second", "2024-05-10")
	seedTask(t, repo, 1, "elsewhere", "2024-05-11")

	tasks, err := repo.ListByUserAndDate(ctx, 1, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// insertion order within the day
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	existing := seedTask(t, repo, 1, "existing", "2024-05-01")

	batch := []*model.Task{
		{UserID: 1, Text: "first of series", Date: "2024-05-10"},
		{ID: existing.ID, UserID: 1, Text: "collides", Date: "2024-06-10"},
	}
	require.Error(t, repo.CreateBatch(ctx, batch))

	var count int64
	require.NoError(t, db.Model(&model.Task{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "failed batch must leave no partial rows")
}

func TestUpdateFieldsOnlyTouchesGiven(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	task := seedTask(t, repo, 1, "stable", "2024-05-10")

	require.NoError(t, repo.UpdateFields(ctx, task, map[string]interface{}{"completed": true}))

	var reloaded model.Task
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.True(t, reloaded.Completed)
	assert.Equal(t, "stable", reloaded.Text)
	assert.Equal(t, "2024-05-10", reloaded.Date)
}

func TestDeleteRemovesRow(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	task := seedTask(t, repo, 1, "doomed", "2024-05-10")
	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
