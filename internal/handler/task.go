package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/auth"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/task"
	ws "github.com/AlyssaMarisDev/ohana-backend-sub001/internal/websocket"
)

type TaskHandler struct {
	svc    *task.Service
	hub    *ws.Hub
	logger *slog.Logger
}

func NewTaskHandler(svc *task.Service, hub *ws.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, hub: hub, logger: logger}
}

type taskRequest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	TagIDs      []string   `json:"tag_ids"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	status := model.TaskPending
	if req.Status != "" {
		var err error
		status, err = model.ParseTaskStatus(req.Status)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	householdID := r.PathValue("id")
	created, err := h.svc.Create(r.Context(), auth.MemberID(r.Context()), householdID, task.CreateParams{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(householdID, ws.NewMessage("task", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

// List returns the household's tasks filtered down to what the caller's tag
// permissions allow.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListVisible(r.Context(), auth.MemberID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.Get(r.Context(), auth.MemberID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	status, err := model.ParseTaskStatus(req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), auth.MemberID(r.Context()), r.PathValue("id"), task.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      status,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(updated.HouseholdID, ws.NewMessage("task", "updated", updated.ID, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")
	found, err := h.svc.Get(r.Context(), auth.MemberID(r.Context()), taskID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.MemberID(r.Context()), taskID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(found.HouseholdID, ws.NewMessage("task", "deleted", taskID, nil))
	w.WriteHeader(http.StatusNoContent)
}
