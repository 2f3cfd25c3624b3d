package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch model.KindOf(err) {
	case model.KindNotFound:
		status, message = http.StatusNotFound, err.Error()
	case model.KindAuthorization:
		status, message = http.StatusForbidden, err.Error()
	case model.KindConflict:
		status, message = http.StatusConflict, err.Error()
	case model.KindValidation:
		status, message = http.StatusBadRequest, err.Error()
	case model.KindStorage:
		logger.Error("storage failure", "error", err)
	default:
		logger.Error("request failed", "error", err)
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	return true
}
