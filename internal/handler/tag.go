package handler

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/auth"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/tags"
	ws "github.com/AlyssaMarisDev/ohana-backend-sub001/internal/websocket"
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type TagHandler struct {
	svc    *tags.Service
	hub    *ws.Hub
	logger *slog.Logger
}

func NewTagHandler(svc *tags.Service, hub *ws.Hub, logger *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, hub: hub, logger: logger}
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Color != "" && !hexColorRegexp.MatchString(req.Color) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "color must be a hex color (e.g. #FF0000)"})
		return
	}

	householdID := r.PathValue("id")
	created, err := h.svc.Create(r.Context(), auth.MemberID(r.Context()), householdID, req.ID, req.Name, req.Color)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(householdID, ws.NewMessage("tag", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

// ListViewable returns only the tags the caller has been granted sight of.
func (h *TagHandler) ListViewable(w http.ResponseWriter, r *http.Request) {
	viewable, err := h.svc.ListViewable(r.Context(), auth.MemberID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if viewable == nil {
		viewable = []model.Tag{}
	}
	writeJSON(w, http.StatusOK, viewable)
}

func (h *TagHandler) Grant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TagIDs []string `json:"tag_ids"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.TagIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tag_ids is required"})
		return
	}

	householdID := r.PathValue("id")
	targetMemberID := r.PathValue("memberID")
	err := h.svc.Grant(r.Context(), auth.MemberID(r.Context()), householdID, targetMemberID, req.TagIDs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(householdID, ws.NewMessage("tag_permission", "granted", targetMemberID, map[string]any{
		"tag_ids": req.TagIDs,
	}))
	w.WriteHeader(http.StatusNoContent)
}
