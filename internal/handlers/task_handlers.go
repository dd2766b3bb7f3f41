package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jalali-planner/internal/middleware"
	"jalali-planner/internal/service"
)

// TaskHandler exposes the task CRUD and query endpoints. The owner id always
// comes from the authenticated request context, never from the payload.
type TaskHandler struct {
	taskSvc *service.TaskService
}

func NewTaskHandler(taskSvc *service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// ByDate handles GET /api/tasks/by-date?date=YYYY-MM-DD.
func (h *TaskHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	tasks, err := h.taskSvc.TasksByDate(r.Context(), userID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fromTaskList(tasks))
}

// All handles GET /api/tasks, optionally filtered by start_date/end_date.
// The response groups tasks by their ISO date.
func (h *TaskHandler) All(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	query := r.URL.Query()
	grouped, err := h.taskSvc.TasksGroupedByDate(r.Context(), userID, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fromGroupedTasks(grouped))
}

// Create handles POST /api/tasks. Recurring requests materialize their whole
// series; the original row comes back with 201.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	var input service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskSvc.CreateTask(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, fromTask(task))
}

// Update handles PUT /api/tasks/{id} with a partial body.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	taskID, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	var input service.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskSvc.UpdateTask(r.Context(), userID, taskID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fromTask(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	taskID, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.taskSvc.DeleteTask(r.Context(), userID, taskID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	return uint(id), err
}
