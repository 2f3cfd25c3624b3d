package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/auth"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/authz"
	"github.com/AlyssaMarisDev/ohana-backend-sub001/internal/store"
)

// HandleWebSocket upgrades the connection and subscribes the caller to their
// household's event stream. The caller must already be authenticated and
// must be an active member of the household named in the query string.
func HandleWebSocket(hub *Hub, uow *store.UnitOfWork, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID := r.URL.Query().Get("household_id")
		if householdID == "" {
			http.Error(w, "household_id is required", http.StatusBadRequest)
			return
		}

		memberID := auth.MemberID(r.Context())
		err := uow.Run(r.Context(), func(tx *store.Tx) error {
			_, err := authz.RequireActiveMember(r.Context(), tx, householdID, memberID)
			return err
		})
		if err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := ws.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, householdID)
		client.Run(r.Context())
	}
}
