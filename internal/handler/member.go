package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/auth"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

type MemberHandler struct {
	members *store.MemberStore
	logger  *slog.Logger
}

func NewMemberHandler(members *store.MemberStore, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.GetByID(r.Context(), auth.MemberID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "member not found"})
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string  `json:"name"`
		Age    *int    `json:"age"`
		Gender *string `json:"gender"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	member, err := h.members.Update(r.Context(), auth.MemberID(r.Context()), req.Name, req.Age, req.Gender)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}
