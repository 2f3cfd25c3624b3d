package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/auth"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/household"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
	ws "github.com/AlyssaMarisDev/ohana-backend-sub001/internal/websocket"
)

type HouseholdHandler struct {
	svc    *household.Service
	hub    *ws.Hub
	logger *slog.Logger
}

func NewHouseholdHandler(svc *household.Service, hub *ws.Hub, logger *slog.Logger) *HouseholdHandler {
	return &HouseholdHandler{svc: svc, hub: hub, logger: logger}
}

func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	created, err := h.svc.Create(r.Context(), auth.MemberID(r.Context()), req.ID, req.Name, req.Description)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *HouseholdHandler) List(w http.ResponseWriter, r *http.Request) {
	households, err := h.svc.ListForMember(r.Context(), auth.MemberID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if households == nil {
		households = []model.Household{}
	}
	writeJSON(w, http.StatusOK, households)
}

func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.Get(r.Context(), auth.MemberID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *HouseholdHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context(), auth.MemberID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if members == nil {
		members = []model.HouseholdMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *HouseholdHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
		Role     string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MemberID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "member_id is required"})
		return
	}
	if req.Role == "" {
		req.Role = string(model.RoleMember)
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	householdID := r.PathValue("id")
	invited, err := h.svc.Invite(r.Context(), auth.MemberID(r.Context()), householdID, req.MemberID, role)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(householdID, ws.NewMessage("household_member", "invited", invited.ID, map[string]any{
		"member_id": invited.MemberID,
	}))
	writeJSON(w, http.StatusCreated, invited)
}

func (h *HouseholdHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	householdID := r.PathValue("id")
	accepted, err := h.svc.AcceptInvite(r.Context(), auth.MemberID(r.Context()), householdID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(householdID, ws.NewMessage("household_member", "joined", accepted.ID, map[string]any{
		"member_id": accepted.MemberID,
	}))
	writeJSON(w, http.StatusOK, accepted)
}
