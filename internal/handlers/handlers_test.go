package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jalali-planner/internal/model"
	"jalali-planner/internal/repository"
	"jalali-planner/internal/service"
)

type testEnv struct {
	router http.Handler
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	taskSvc := service.NewTaskService(taskRepo)
	authSvc := service.NewAuthService(userRepo, "test-secret")

	router := NewRouter(
		NewTaskHandler(taskSvc),
		NewAuthHandler(authSvc, userRepo),
		NewCalendarHandler(),
		authSvc,
	)
	return &testEnv{router: router, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) TaskResponse {
	t.Helper()
	var task TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	return task
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/tasks", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"email": "not-an-email", "password": "short",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "name")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")

	env.registerUser(t, "taken@example.com")
	rec = env.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"name": "Dup", "email": "taken@example.com", "password": "correct horse",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "login@example.com")

	rec := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "login@example.com", "password": "correct horse",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "login@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndFetchTask(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user@example.com")

	rec := env.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"text": "Pay rent", "date": "2024-03-20", "amount": 1200.5, "recipient": "Landlord",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeTask(t, rec)
	assert.Equal(t, "Pay rent", created.Text)
	assert.Equal(t, "2024-03-20", created.Date)
	assert.Equal(t, "1403-1-1", created.JalaliDate)
	assert.Contains(t, created.FormattedJalaliDate, "فروردین")
	require.NotNil(t, created.Amount)
	assert.Equal(t, 1200.5, *created.Amount)

	rec = env.do(t, http.MethodGet, "/api/tasks/by-date?date=2024-03-20", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, created.JalaliDate, list[0].JalaliDate)
}

func TestCreateTaskValidationStatus(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user@example.com")

	rec := env.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"text": "", "date": "2024/03/20",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "text")
	assert.Contains(t, resp.Errors, "date")
}

func TestByDateRequiresValidDate(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user@example.com")

	rec := env.do(t, http.MethodGet, "/api/tasks/by-date?date=zzz", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/tasks/by-date", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGroupedTasksWithRange(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user@example.com")

	for _, date := range []string{"2024-05-10", "2024-05-10", "2024-05-20", "2024-06-01"} {
		rec := env.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
			"text": "task", "date": date,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/tasks?start_date=2024-05-01&end_date=2024-05-31", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var grouped map[string][]TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grouped))
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["2024-05-10"], 2)
	assert.Len(t, grouped["2024-05-20"], 1)

	rec = env.do(t, http.MethodGet, "/api/tasks?start_date=2024-05-31&end_date=2024-05-01", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRecurringCreateReturnsOriginal(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user@example.com")

	rec := env.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"text": "Rent", "date": "2024-01-31", "is_recurring": true, "recurrence_months": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeTask(t, rec)
	assert.True(t, created.IsRecurring)
	require.NotNil(t, created.RemainingOccurrences)
	assert.Equal(t, 3, *created.RemainingOccurrences)

	var count int64
	require.NoError(t, env.db.Model(&model.Task{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestUpdateOwnershipAndValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com")
	intruder := env.registerUser(t, "intruder@example.com")

	rec := env.do(t, http.MethodPost, "/api/tasks", owner, map[string]interface{}{
		"text": "mine", "date": "2024-05-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeTask(t, rec)
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	rec = env.do(t, http.MethodPut, path, intruder, map[string]interface{}{"text": "stolen"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, path, owner, map[string]interface{}{"text": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPut, path, owner, map[string]interface{}{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeTask(t, rec).Completed)
}

func TestDeleteStatusCodes(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com")
	intruder := env.registerUser(t, "intruder@example.com")

	rec := env.do(t, http.MethodPost, "/api/tasks", owner, map[string]interface{}{
		"text": "doomed", "date": "2024-05-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeTask(t, rec)
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	rec = env.do(t, http.MethodDelete, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCalendarMonth(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "user@example.com")

	rec := env.do(t, http.MethodGet, "/api/calendar?year=1403&month=1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Year      int    `json:"year"`
		Month     int    `json:"month"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Days      []struct {
			Day  int    `json:"day"`
			Date string `json:"date"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1403, resp.Year)
	assert.Equal(t, "2024-03-20", resp.StartDate)
	assert.Equal(t, "2024-04-19", resp.EndDate)
	require.Len(t, resp.Days, 31)
	assert.Equal(t, "2024-03-20", resp.Days[0].Date)

	rec = env.do(t, http.MethodGet, "/api/calendar?month=13", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
