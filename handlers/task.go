package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/sharmasagarr/taskmanager/domain"
	"github.com/sharmasagarr/taskmanager/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskResp struct {
	Task domain.Task `json:"task"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	creatorId, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorResp(domain.ErrInvalidToken(), w)
		return
	}

	req := &struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		AssignedTo  string `json:"assignedTo"`
		Status      string `json:"status"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	task, err := h.tasks.Create(r.Context(), creatorId, req.Title, req.Description, req.AssignedTo, req.Status)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeResp(taskResp{Task: task}, http.StatusCreated, w)
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requesterId, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorResp(domain.ErrInvalidToken(), w)
		return
	}

	req := &struct {
		Status string `json:"status"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	task, err := h.tasks.UpdateStatus(r.Context(), mux.Vars(r)["id"], requesterId, req.Status)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeResp(taskResp{Task: task}, http.StatusOK, w)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterId, ok := UserIDFromContext(r.Context())
	if !ok {
		writeErrorResp(domain.ErrInvalidToken(), w)
		return
	}

	if err := h.tasks.Delete(r.Context(), mux.Vars(r)["id"], requesterId); err != nil {
		writeErrorResp(err, w)
		return
	}

	writeResp(struct {
		Message string `json:"message"`
	}{Message: "Task deleted"}, http.StatusOK, w)
}

func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetAll(r.Context())
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeTasks(tasks, w)
}

func (h *TaskHandler) Filter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.TaskFilter{
		AssignedToId: query.Get("assignedTo"),
		Status:       query.Get("status"),
	}

	if raw := query.Get("fromDate"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			writeErrorResp(err, w)
			return
		}
		filter.From = from
	}
	if raw := query.Get("toDate"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			writeErrorResp(err, w)
			return
		}
		filter.To = to
	}

	tasks, err := h.tasks.Filter(r.Context(), filter)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeTasks(tasks, w)
}

func writeTasks(tasks domain.Tasks, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := tasks.ToJSON(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("dates must be RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}
